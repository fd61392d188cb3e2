package service

import (
	"context"
	"log"
	"time"

	"assessment-service/internal/event"
	"assessment-service/internal/importer"
	"assessment-service/internal/models"
	"assessment-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionService struct {
	Repo      *repository.QuestionRepository
	Publisher *event.EventPublisher
}

func NewQuestionService(repo *repository.QuestionRepository, publisher *event.EventPublisher) *QuestionService {
	return &QuestionService{Repo: repo, Publisher: publisher}
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.Repo.FindActive(ctx)
}

func (s *QuestionService) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	return s.Repo.FindByCategory(ctx, category)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	question.EnsureDefaults()
	if err := question.Validate(); err != nil {
		return err
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	return s.Repo.Create(ctx, question)
}

// UpdateQuestion replaces the editable fields of a question. The full
// document is validated so an edit can never break the answer invariant.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, question *models.Question) error {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	question.ID = existing.ID
	question.CreatedAt = existing.CreatedAt
	if question.Status == "" {
		question.Status = existing.Status
	}
	question.EnsureDefaults()
	if err := question.Validate(); err != nil {
		return err
	}
	question.UpdatedAt = time.Now()

	update := bson.M{
		"category":       question.Category,
		"topic":          question.Topic,
		"prompt":         question.Prompt,
		"options":        question.Options,
		"correct_answer": question.CorrectAnswer,
		"difficulty":     question.Difficulty,
		"status":         question.Status,
		"updated_at":     question.UpdatedAt,
	}
	return s.Repo.Update(ctx, id, update)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *QuestionService) ListCategories() []string {
	return models.Categories
}

// ImportFromFile bulk-loads questions from an uploaded csv or xlsx file.
func (s *QuestionService) ImportFromFile(ctx context.Context, path string) (*importer.ImportResult, error) {
	result, err := importer.ImportQuestions(ctx, path, s)
	if err != nil {
		return nil, err
	}
	if result.Created > 0 {
		perr := s.Publisher.Publish(event.QuestionsImported, map[string]interface{}{
			"created": result.Created,
			"skipped": result.Skipped,
			"errors":  len(result.Errors),
		})
		if perr != nil {
			log.Printf("failed to publish %s: %v", event.QuestionsImported, perr)
		}
	}
	return result, nil
}

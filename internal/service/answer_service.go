package service

import (
	"context"

	"assessment-service/internal/models"
	"assessment-service/internal/repository"
)

// AnswerService exposes the stored answer records for support and admin
// tooling. Answer writes happen only through the scoring persister.
type AnswerService struct {
	Repo *repository.AnswerRepository
}

func NewAnswerService(repo *repository.AnswerRepository) *AnswerService {
	return &AnswerService{Repo: repo}
}

func (s *AnswerService) GetUserAnswers(ctx context.Context, userID string) ([]models.AnswerRecord, error) {
	answers, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []models.AnswerRecord{}
	}
	return answers, nil
}

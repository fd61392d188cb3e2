package repository

import (
	"context"

	"assessment-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnswerRepository struct {
	Col *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{Col: db.Collection("answers")}
}

// EnsureIndexes creates the unique (user_id, question_id) index. Together
// with Upsert it guarantees at most one stored answer per pair even when
// two devices submit the same question concurrently.
func (r *AnswerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "question_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert records an answer, replacing any earlier answer for the same
// (user, question) pair
func (r *AnswerRepository) Upsert(ctx context.Context, answer *models.AnswerRecord) error {
	filter := bson.M{"user_id": answer.UserID, "question_id": answer.QuestionID}
	update := bson.M{
		"$set": bson.M{
			"selected_answer": answer.SelectedAnswer,
			"is_correct":      answer.IsCorrect,
			"answered_at":     answer.AnsweredAt,
		},
		"$setOnInsert": bson.M{
			"_id":         uuid.New().String(),
			"user_id":     answer.UserID,
			"question_id": answer.QuestionID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// AnsweredQuestionIDs returns the distinct question ids a user has answered,
// read fresh for every new test composition
func (r *AnswerRepository) AnsweredQuestionIDs(ctx context.Context, userID string) ([]string, error) {
	values, err := r.Col.Distinct(ctx, "question_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, value := range values {
		if id, ok := value.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *AnswerRepository) FindByUser(ctx context.Context, userID string) ([]models.AnswerRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "answered_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var answers []models.AnswerRecord
	for cur.Next(ctx) {
		var a models.AnswerRecord
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

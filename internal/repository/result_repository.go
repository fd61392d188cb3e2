package repository

import (
	"context"

	"assessment-service/internal/models"
	"assessment-service/internal/scoring"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

// Create appends one snapshot; snapshots are never updated or merged
func (r *ResultRepository) Create(ctx context.Context, snapshot *models.ResultSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	_, err := r.Col.InsertOne(ctx, snapshot)
	return err
}

// FindByUser returns a user's snapshots, newest first, optionally limited
// to one category ("" means all)
func (r *ResultRepository) FindByUser(ctx context.Context, userID, category string) ([]models.ResultSnapshot, error) {
	filter := bson.M{"user_id": userID}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var snapshots []models.ResultSnapshot
	for cur.Next(ctx) {
		var s models.ResultSnapshot
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

// FindLatestOverall returns the newest Overall snapshot, or nil when the
// user has never completed a test
func (r *ResultRepository) FindLatestOverall(ctx context.Context, userID string) (*models.ResultSnapshot, error) {
	filter := bson.M{"user_id": userID, "category": models.OverallCategory}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var snapshot models.ResultSnapshot
	err := r.Col.FindOne(ctx, filter, opts).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// CategoryAggregates groups the per-category snapshots into platform-wide
// attempt counts, average accuracy, and strong/weak tallies
func (r *ResultRepository) CategoryAggregates(ctx context.Context) ([]models.CategoryAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"category": bson.M{"$ne": models.OverallCategory}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$category",
			"attempts":     bson.M{"$sum": 1},
			"avg_accuracy": bson.M{"$avg": "$accuracy"},
			"strong_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$accuracy", scoring.StrongThreshold}}, 1, 0,
			}}},
			"weak_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$lt": bson.A{"$accuracy", scoring.WeakThreshold}}, 1, 0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var aggregates []models.CategoryAggregate
	for cur.Next(ctx) {
		var a models.CategoryAggregate
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, nil
}

// CountTests counts completed tests (one Overall snapshot each)
func (r *ResultRepository) CountTests(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"category": models.OverallCategory})
}

// CountUsers counts distinct users with at least one completed test
func (r *ResultRepository) CountUsers(ctx context.Context) (int, error) {
	values, err := r.Col.Distinct(ctx, "user_id", bson.M{"category": models.OverallCategory})
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

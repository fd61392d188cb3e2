package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/models"
	"assessment-service/internal/repository"
)

const latestOverallTTL = 10 * time.Minute

func latestOverallKey(userID string) string {
	return fmt.Sprintf("assessment:latest:%s", userID)
}

type ResultService struct {
	Repo  *repository.ResultRepository
	Cache *repository.CacheRepository
}

func NewResultService(repo *repository.ResultRepository, cache *repository.CacheRepository) *ResultService {
	return &ResultService{Repo: repo, Cache: cache}
}

// GetHistory returns a user's snapshots, newest first. An empty category
// returns everything including Overall rows.
func (s *ResultService) GetHistory(ctx context.Context, userID, category string) ([]models.ResultSnapshot, error) {
	snapshots, err := s.Repo.FindByUser(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	if snapshots == nil {
		snapshots = []models.ResultSnapshot{}
	}
	return snapshots, nil
}

// GetLatestOverall returns the user's most recent whole-test snapshot,
// or nil when they have never completed a test.
func (s *ResultService) GetLatestOverall(ctx context.Context, userID string) (*models.ResultSnapshot, error) {
	key := latestOverallKey(userID)

	var cached models.ResultSnapshot
	found, err := s.Cache.GetStruct(ctx, key, &cached)
	if err != nil {
		log.Printf("cache read failed for %s: %v", key, err)
	}
	if found {
		return &cached, nil
	}

	snapshot, err := s.Repo.FindLatestOverall(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	if err := s.Cache.SaveStruct(ctx, key, snapshot, latestOverallTTL); err != nil {
		log.Printf("cache write failed for %s: %v", key, err)
	}
	return snapshot, nil
}

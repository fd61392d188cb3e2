package service

import (
	"context"
	"log"
	"math"
	"time"

	"assessment-service/internal/models"
	"assessment-service/internal/repository"
)

const (
	analyticsCacheKey = "assessment:analytics"
	analyticsCacheTTL = time.Hour
)

// AnalyticsService aggregates the result snapshots into a platform-wide
// report for administrators.
type AnalyticsService struct {
	Results *repository.ResultRepository
	Cache   *repository.CacheRepository
}

func NewAnalyticsService(results *repository.ResultRepository, cache *repository.CacheRepository) *AnalyticsService {
	return &AnalyticsService{Results: results, Cache: cache}
}

// GetReport returns the cached report when fresh, recomputing otherwise.
func (s *AnalyticsService) GetReport(ctx context.Context) (*models.AnalyticsReport, error) {
	var cached models.AnalyticsReport
	found, err := s.Cache.GetStruct(ctx, analyticsCacheKey, &cached)
	if err != nil {
		log.Printf("cache read failed for %s: %v", analyticsCacheKey, err)
	}
	if found {
		return &cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the report from the snapshot collection and caches it.
func (s *AnalyticsService) Refresh(ctx context.Context) (*models.AnalyticsReport, error) {
	totalTests, err := s.Results.CountTests(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.Results.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Results.CategoryAggregates(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.CategoryAggregate{}
	}
	for i := range categories {
		categories[i].AvgAccuracy = math.Round(categories[i].AvgAccuracy*10) / 10
	}

	report := &models.AnalyticsReport{
		TotalTests:  int(totalTests),
		TotalUsers:  totalUsers,
		Categories:  categories,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.Cache.SaveStruct(ctx, analyticsCacheKey, report, analyticsCacheTTL); err != nil {
		log.Printf("cache write failed for %s: %v", analyticsCacheKey, err)
	}
	return report, nil
}

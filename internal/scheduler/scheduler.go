package scheduler

import (
	"context"
	"log"
	"time"

	"assessment-service/internal/service"

	"github.com/go-co-op/gocron"
)

// Scheduler keeps the analytics report warm in the background.
type Scheduler struct {
	scheduler *gocron.Scheduler
	analytics *service.AnalyticsService
	interval  int
}

func New(analytics *service.AnalyticsService, intervalMinutes int) *Scheduler {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		analytics: analytics,
		interval:  intervalMinutes,
	}
}

func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(s.interval).Minutes().Do(s.refreshAnalytics); err != nil {
		log.Printf("failed to schedule analytics refresh: %v", err)
	}
	s.scheduler.StartAsync()
	log.Printf("Scheduler started: analytics refresh every %d minutes", s.interval)
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) refreshAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.analytics.Refresh(ctx); err != nil {
		log.Printf("analytics refresh failed: %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/event"
	"assessment-service/internal/models"
	"assessment-service/internal/repository"
	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrTooManyRequests = errors.New("too many test starts, slow down")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionAccess   = errors.New("session belongs to another user")
	ErrSessionClosed   = errors.New("session is already completed")
)

// AssessmentService runs the test lifecycle: compose a question set,
// hand it out, then score and persist the submission.
type AssessmentService struct {
	Sessions  *repository.SessionRepository
	Questions *repository.QuestionRepository
	Composer  *selection.TestComposer
	Persister *scoring.Persister
	Cache     *repository.CacheRepository
	Publisher *event.EventPublisher
	RateLimit int
}

func NewAssessmentService(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	composer *selection.TestComposer,
	persister *scoring.Persister,
	cache *repository.CacheRepository,
	publisher *event.EventPublisher,
	rateLimit int,
) *AssessmentService {
	return &AssessmentService{
		Sessions:  sessions,
		Questions: questions,
		Composer:  composer,
		Persister: persister,
		Cache:     cache,
		Publisher: publisher,
		RateLimit: rateLimit,
	}
}

// StartTest composes a fresh question set for the user, opens a session,
// and returns the questions with grading data stripped.
func (s *AssessmentService) StartTest(ctx context.Context, userID string) (*models.TestSession, []models.QuestionPublic, error) {
	if err := s.allowStart(ctx, userID); err != nil {
		return nil, nil, err
	}

	questions, err := s.Composer.Compose(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(questions))
	public := make([]models.QuestionPublic, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		public[i] = q.Public()
	}

	session := &models.TestSession{
		UserID:       userID,
		SessionToken: uuid.New().String(),
		QuestionIDs:  ids,
		Status:       models.SessionStatusActive,
		StartedAt:    time.Now(),
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	s.publish(event.SessionStarted, map[string]interface{}{
		"session_id":     session.ID,
		"user_id":        userID,
		"question_count": len(questions),
	})

	return session, public, nil
}

// allowStart enforces the per-user start rate; it fails open when Redis
// is unavailable so cache trouble never blocks a test.
func (s *AssessmentService) allowStart(ctx context.Context, userID string) error {
	if s.RateLimit <= 0 {
		return nil
	}
	key := fmt.Sprintf("assessment:ratelimit:%s", userID)
	count, err := s.Cache.IncrWithTTL(ctx, key, time.Minute)
	if err != nil {
		log.Printf("rate limit check failed for %s: %v", userID, err)
		return nil
	}
	if count > int64(s.RateLimit) {
		return ErrTooManyRequests
	}
	return nil
}

// SubmitTest grades a submission against the session's question set.
// The scored session is saved first; answer and snapshot writes are best
// effort and reported through the returned outcome.
func (s *AssessmentService) SubmitTest(ctx context.Context, userID, sessionID string, answers map[string]string) (*models.TestSession, *scoring.PersistOutcome, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Status != models.SessionStatusActive {
		return nil, nil, ErrSessionClosed
	}

	questions, err := s.Questions.FindByIDs(ctx, session.QuestionIDs)
	if err != nil {
		return nil, nil, err
	}
	ordered := orderByIDs(questions, session.QuestionIDs)
	selected := selectedAnswers(ordered, answers)

	report, err := scoring.Score(ordered, selected)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	session.Status = models.SessionStatusCompleted
	session.CompletedAt = now
	session.Report = report

	err = s.Sessions.Update(ctx, session.ID, bson.M{
		"status":       session.Status,
		"completed_at": now,
		"report":       report,
	})
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]scoring.AnsweredQuestion, len(ordered))
	for i, q := range ordered {
		pairs[i] = scoring.AnsweredQuestion{Question: q, Selected: selected[i]}
	}
	outcome := s.Persister.Persist(ctx, userID, session.ID, pairs, report)
	if outcome.Failed() {
		s.publish(event.ResultPersistFailed, map[string]interface{}{
			"session_id": session.ID,
			"user_id":    userID,
			"failures":   outcome.Failures,
		})
	}

	if err := s.Cache.Delete(ctx, latestOverallKey(userID)); err != nil {
		log.Printf("failed to invalidate cached result for %s: %v", userID, err)
	}

	s.publish(event.SessionCompleted, map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
		"score":      report.TotalScore,
	})

	return session, outcome, nil
}

// PoolInfo reports whether the question pool can sustain a test right now
func (s *AssessmentService) PoolInfo(ctx context.Context) (map[string]interface{}, error) {
	count, err := s.Questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"active_questions":   count,
		"questions_per_test": s.Composer.Target,
		"min_pool_size":      s.Composer.MinPool,
		"ready":              count >= int64(s.Composer.MinPool),
	}, nil
}

func (s *AssessmentService) GetSession(ctx context.Context, userID, sessionID string) (*models.TestSession, error) {
	return s.loadOwnedSession(ctx, userID, sessionID)
}

func (s *AssessmentService) ListSessions(ctx context.Context, userID string) ([]models.TestSession, error) {
	return s.Sessions.FindByUser(ctx, userID)
}

func (s *AssessmentService) loadOwnedSession(ctx context.Context, userID, sessionID string) (*models.TestSession, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrSessionAccess
	}
	return session, nil
}

func (s *AssessmentService) publish(eventType string, payload map[string]interface{}) {
	if err := s.Publisher.Publish(eventType, payload); err != nil {
		log.Printf("failed to publish %s: %v", eventType, err)
	}
}

// orderByIDs arranges questions to match the session's stored order.
// IDs with no matching question are skipped.
func orderByIDs(questions []models.Question, ids []string) []models.Question {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}

// selectedAnswers maps submitted answers onto the question order. A
// question the user never answered yields an empty string.
func selectedAnswers(questions []models.Question, answers map[string]string) []string {
	selected := make([]string, len(questions))
	for i, q := range questions {
		selected[i] = answers[q.ID]
	}
	return selected
}

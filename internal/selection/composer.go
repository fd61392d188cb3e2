package selection

import (
	"context"
	"errors"
	"fmt"

	"assessment-service/internal/models"
)

var (
	// ErrPoolUnavailable means the question pool or answer history could not
	// be read; starting a test can be retried
	ErrPoolUnavailable = errors.New("question pool unavailable")

	// ErrPoolTooSmall means the pool holds fewer questions than the minimum
	// viable test even after the exhaustion fallback
	ErrPoolTooSmall = errors.New("question pool too small")
)

// PoolSource provides the active question pool
type PoolSource interface {
	FindActive(ctx context.Context) ([]models.Question, error)
}

// HistorySource provides the ids of questions a user has already answered
type HistorySource interface {
	AnsweredQuestionIDs(ctx context.Context, userID string) ([]string, error)
}

// TestComposer draws a fresh test from the stores. The answered-id set is
// read per call, never cached, so concurrent sessions each see current state.
type TestComposer struct {
	pool     PoolSource
	history  HistorySource
	selector *Selector
	Target   int
	MinPool  int
}

func NewTestComposer(pool PoolSource, history HistorySource, target, minPool int) *TestComposer {
	return &TestComposer{
		pool:     pool,
		history:  history,
		selector: NewSelector(),
		Target:   target,
		MinPool:  minPool,
	}
}

// Compose selects the questions for one new test session for the given user
func (c *TestComposer) Compose(ctx context.Context, userID string) ([]models.Question, error) {
	pool, err := c.pool.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}
	if len(pool) < c.MinPool {
		return nil, fmt.Errorf("%w: %d questions available, %d required", ErrPoolTooSmall, len(pool), c.MinPool)
	}

	answered, err := c.history.AnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: answer history: %v", ErrPoolUnavailable, err)
	}

	return c.selector.BuildTest(pool, answered, c.Target), nil
}

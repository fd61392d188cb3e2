package selection

import (
	"context"
	"errors"
	"testing"

	"assessment-service/internal/models"
)

type fakePool struct {
	questions []models.Question
	err       error
}

func (f *fakePool) FindActive(ctx context.Context) ([]models.Question, error) {
	return f.questions, f.err
}

type fakeHistory struct {
	ids []string
	err error
}

func (f *fakeHistory) AnsweredQuestionIDs(ctx context.Context, userID string) ([]string, error) {
	return f.ids, f.err
}

func TestComposeReturnsTest(t *testing.T) {
	composer := NewTestComposer(&fakePool{questions: makePool(30)}, &fakeHistory{}, 10, 5)

	questions, err := composer.Compose(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(questions) != 10 {
		t.Errorf("Expected 10 questions, got %d", len(questions))
	}
}

func TestComposePoolFetchFailure(t *testing.T) {
	composer := NewTestComposer(&fakePool{err: errors.New("connection refused")}, &fakeHistory{}, 10, 5)

	_, err := composer.Compose(context.Background(), "user-1")
	if !errors.Is(err, ErrPoolUnavailable) {
		t.Errorf("Expected ErrPoolUnavailable, got %v", err)
	}
}

func TestComposeHistoryFetchFailure(t *testing.T) {
	composer := NewTestComposer(&fakePool{questions: makePool(30)}, &fakeHistory{err: errors.New("timeout")}, 10, 5)

	_, err := composer.Compose(context.Background(), "user-1")
	if !errors.Is(err, ErrPoolUnavailable) {
		t.Errorf("Expected ErrPoolUnavailable, got %v", err)
	}
}

func TestComposePoolTooSmall(t *testing.T) {
	composer := NewTestComposer(&fakePool{questions: makePool(3)}, &fakeHistory{}, 10, 5)

	_, err := composer.Compose(context.Background(), "user-1")
	if !errors.Is(err, ErrPoolTooSmall) {
		t.Errorf("Expected ErrPoolTooSmall, got %v", err)
	}
}

func TestComposeAppliesHistory(t *testing.T) {
	history := &fakeHistory{ids: []string{"q0", "q1", "q2", "q3", "q4"}}
	composer := NewTestComposer(&fakePool{questions: makePool(20)}, history, 15, 5)

	questions, err := composer.Compose(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(questions) != 15 {
		t.Fatalf("Expected 15 questions, got %d", len(questions))
	}
	for _, q := range questions {
		for _, id := range history.ids {
			if q.ID == id {
				t.Errorf("Expected answered question %s to be excluded", id)
			}
		}
	}
}

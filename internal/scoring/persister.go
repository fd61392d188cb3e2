package scoring

import (
	"context"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/models"
)

// AnswerSink records one answer per (user, question) pair. Upsert semantics
// keep a concurrent second device from producing duplicate records.
type AnswerSink interface {
	Upsert(ctx context.Context, answer *models.AnswerRecord) error
}

// SnapshotSink appends immutable result snapshots
type SnapshotSink interface {
	Create(ctx context.Context, snapshot *models.ResultSnapshot) error
}

// AnsweredQuestion pairs a question with the option text the user picked
type AnsweredQuestion struct {
	Question models.Question
	Selected string
}

// PersistOutcome reports what a best-effort persistence run achieved.
// A failed outcome never invalidates the in-memory report the user sees.
type PersistOutcome struct {
	AnswersWritten   int      `json:"answers_written"`
	SnapshotsWritten int      `json:"snapshots_written"`
	Failures         []string `json:"failures,omitempty"`
	FirstErr         error    `json:"-"`
}

func (o *PersistOutcome) Failed() bool {
	return o.FirstErr != nil
}

func (o *PersistOutcome) record(desc string, err error) {
	o.Failures = append(o.Failures, desc)
	if o.FirstErr == nil {
		o.FirstErr = err
	}
	log.Printf("persist: %s", desc)
}

// Persister durably records the outcome of one test session
type Persister struct {
	Answers   AnswerSink
	Snapshots SnapshotSink
}

func NewPersister(answers AnswerSink, snapshots SnapshotSink) *Persister {
	return &Persister{Answers: answers, Snapshots: snapshots}
}

// Persist writes, in order: one answer record per pair, the Overall
// snapshot, then one snapshot per category. Every write is independent;
// a failure is recorded in the outcome and the remaining writes still run.
// Nothing is rolled back.
func (p *Persister) Persist(ctx context.Context, userID, sessionID string, pairs []AnsweredQuestion, report *models.ScoreReport) *PersistOutcome {
	outcome := &PersistOutcome{Failures: make([]string, 0)}
	now := time.Now()

	for _, pair := range pairs {
		record := &models.AnswerRecord{
			UserID:         userID,
			QuestionID:     pair.Question.ID,
			SelectedAnswer: pair.Selected,
			IsCorrect:      pair.Selected == pair.Question.CorrectAnswer,
			AnsweredAt:     now,
		}
		if err := p.Answers.Upsert(ctx, record); err != nil {
			outcome.record(fmt.Sprintf("answer %s: %v", pair.Question.ID, err), err)
			continue
		}
		outcome.AnswersWritten++
	}

	overall := &models.ResultSnapshot{
		UserID:         userID,
		SessionID:      sessionID,
		Category:       models.OverallCategory,
		Score:          report.TotalCorrect,
		TotalQuestions: report.TotalQuestions,
		Accuracy:       report.TotalScore,
		WeakTopics:     report.WeakTopics,
		StrongTopics:   report.StrongTopics,
		CreatedAt:      now,
	}
	if err := p.Snapshots.Create(ctx, overall); err != nil {
		outcome.record(fmt.Sprintf("overall snapshot: %v", err), err)
	} else {
		outcome.SnapshotsWritten++
	}

	for _, category := range report.Categories {
		snapshot := &models.ResultSnapshot{
			UserID:         userID,
			SessionID:      sessionID,
			Category:       category.Category,
			Score:          category.Correct,
			TotalQuestions: category.Total,
			Accuracy:       category.Percentage,
			WeakTopics:     make([]string, 0),
			StrongTopics:   make([]string, 0),
			CreatedAt:      now,
		}
		if category.IsStrong {
			snapshot.StrongTopics = append(snapshot.StrongTopics, category.Category)
		}
		if category.IsWeak {
			snapshot.WeakTopics = append(snapshot.WeakTopics, category.Category)
		}

		if err := p.Snapshots.Create(ctx, snapshot); err != nil {
			outcome.record(fmt.Sprintf("%s snapshot: %v", category.Category, err), err)
			continue
		}
		outcome.SnapshotsWritten++
	}

	return outcome
}

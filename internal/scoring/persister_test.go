package scoring

import (
	"context"
	"errors"
	"testing"

	"assessment-service/internal/models"
)

type fakeAnswerSink struct {
	records []models.AnswerRecord
	failFor map[string]error
}

func (f *fakeAnswerSink) Upsert(ctx context.Context, answer *models.AnswerRecord) error {
	if err, ok := f.failFor[answer.QuestionID]; ok {
		return err
	}
	f.records = append(f.records, *answer)
	return nil
}

type fakeSnapshotSink struct {
	snapshots []models.ResultSnapshot
	failFor   map[string]error
}

func (f *fakeSnapshotSink) Create(ctx context.Context, snapshot *models.ResultSnapshot) error {
	if err, ok := f.failFor[snapshot.Category]; ok {
		return err
	}
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func scoredFixture(t *testing.T) ([]AnsweredQuestion, *models.ScoreReport) {
	t.Helper()

	questions := []models.Question{
		{ID: "q1", Category: "Quantitative", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q2", Category: "Quantitative", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q3", Category: "Verbal", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	}
	selected := []string{"a", "b", "b"}

	report, err := Score(questions, selected)
	if err != nil {
		t.Fatalf("Expected fixture to score, got %v", err)
	}

	pairs := make([]AnsweredQuestion, 0, len(questions))
	for i, q := range questions {
		pairs = append(pairs, AnsweredQuestion{Question: q, Selected: selected[i]})
	}
	return pairs, report
}

func TestPersistWritesEverything(t *testing.T) {
	answers := &fakeAnswerSink{}
	snapshots := &fakeSnapshotSink{}
	persister := NewPersister(answers, snapshots)

	pairs, report := scoredFixture(t)
	outcome := persister.Persist(context.Background(), "user-1", "session-1", pairs, report)

	if outcome.Failed() {
		t.Fatalf("Expected clean outcome, got failures %v", outcome.Failures)
	}
	if outcome.AnswersWritten != 3 {
		t.Errorf("Expected 3 answers written, got %d", outcome.AnswersWritten)
	}
	// Overall plus Quantitative plus Verbal
	if outcome.SnapshotsWritten != 3 {
		t.Errorf("Expected 3 snapshots written, got %d", outcome.SnapshotsWritten)
	}

	// Overall first, then categories in report order
	if snapshots.snapshots[0].Category != models.OverallCategory {
		t.Errorf("Expected first snapshot to be Overall, got %s", snapshots.snapshots[0].Category)
	}
	if snapshots.snapshots[1].Category != "Quantitative" || snapshots.snapshots[2].Category != "Verbal" {
		t.Errorf("Expected category snapshots in report order, got %s then %s",
			snapshots.snapshots[1].Category, snapshots.snapshots[2].Category)
	}
}

func TestPersistTagsCorrectness(t *testing.T) {
	answers := &fakeAnswerSink{}
	persister := NewPersister(answers, &fakeSnapshotSink{})

	pairs, report := scoredFixture(t)
	persister.Persist(context.Background(), "user-1", "session-1", pairs, report)

	expected := map[string]bool{"q1": true, "q2": false, "q3": true}
	for _, record := range answers.records {
		if record.IsCorrect != expected[record.QuestionID] {
			t.Errorf("Expected %s correctness %v, got %v",
				record.QuestionID, expected[record.QuestionID], record.IsCorrect)
		}
		if record.UserID != "user-1" {
			t.Errorf("Expected user-1 on record, got %s", record.UserID)
		}
	}
}

func TestPersistOverallFailureIsolation(t *testing.T) {
	answers := &fakeAnswerSink{}
	snapshots := &fakeSnapshotSink{
		failFor: map[string]error{models.OverallCategory: errors.New("write refused")},
	}
	persister := NewPersister(answers, snapshots)

	pairs, report := scoredFixture(t)
	outcome := persister.Persist(context.Background(), "user-1", "session-1", pairs, report)

	if !outcome.Failed() {
		t.Fatal("Expected outcome to report the Overall failure")
	}
	// Per-category snapshots still written after the Overall write failed
	if outcome.SnapshotsWritten != 2 {
		t.Errorf("Expected 2 category snapshots despite Overall failure, got %d", outcome.SnapshotsWritten)
	}
	if len(snapshots.snapshots) != 2 {
		t.Fatalf("Expected 2 stored snapshots, got %d", len(snapshots.snapshots))
	}
	for _, snapshot := range snapshots.snapshots {
		if snapshot.Category == models.OverallCategory {
			t.Errorf("Overall snapshot should not have been stored")
		}
	}
	if outcome.AnswersWritten != 3 {
		t.Errorf("Expected answers untouched by snapshot failure, got %d written", outcome.AnswersWritten)
	}
}

func TestPersistAnswerFailureDoesNotAbort(t *testing.T) {
	answers := &fakeAnswerSink{failFor: map[string]error{"q2": errors.New("duplicate key")}}
	snapshots := &fakeSnapshotSink{}
	persister := NewPersister(answers, snapshots)

	pairs, report := scoredFixture(t)
	outcome := persister.Persist(context.Background(), "user-1", "session-1", pairs, report)

	if !outcome.Failed() {
		t.Fatal("Expected outcome to report the answer failure")
	}
	if outcome.AnswersWritten != 2 {
		t.Errorf("Expected the other 2 answers written, got %d", outcome.AnswersWritten)
	}
	if outcome.SnapshotsWritten != 3 {
		t.Errorf("Expected all 3 snapshots written, got %d", outcome.SnapshotsWritten)
	}
	if outcome.FirstErr == nil || outcome.FirstErr.Error() != "duplicate key" {
		t.Errorf("Expected first error to be the answer failure, got %v", outcome.FirstErr)
	}
}

func TestPersistSnapshotContents(t *testing.T) {
	snapshots := &fakeSnapshotSink{}
	persister := NewPersister(&fakeAnswerSink{}, snapshots)

	pairs, report := scoredFixture(t)
	persister.Persist(context.Background(), "user-7", "session-9", pairs, report)

	overall := snapshots.snapshots[0]
	if overall.Score != report.TotalCorrect || overall.TotalQuestions != report.TotalQuestions {
		t.Errorf("Expected overall %d/%d, got %d/%d",
			report.TotalCorrect, report.TotalQuestions, overall.Score, overall.TotalQuestions)
	}
	if overall.Accuracy != report.TotalScore {
		t.Errorf("Expected overall accuracy %d, got %d", report.TotalScore, overall.Accuracy)
	}
	if overall.SessionID != "session-9" {
		t.Errorf("Expected session-9, got %s", overall.SessionID)
	}

	// Quantitative went 1/2, neither strong nor weak at 50
	quant := snapshots.snapshots[1]
	if quant.Score != 1 || quant.TotalQuestions != 2 || quant.Accuracy != 50 {
		t.Errorf("Expected Quantitative 1/2 at 50, got %d/%d at %d",
			quant.Score, quant.TotalQuestions, quant.Accuracy)
	}
	if len(quant.StrongTopics) != 0 || len(quant.WeakTopics) != 0 {
		t.Errorf("Expected empty topic lists at 50%%, got strong=%v weak=%v",
			quant.StrongTopics, quant.WeakTopics)
	}

	// Verbal went 1/1, strong, and names itself in the strong list
	verbal := snapshots.snapshots[2]
	if verbal.Accuracy != 100 {
		t.Errorf("Expected Verbal accuracy 100, got %d", verbal.Accuracy)
	}
	if len(verbal.StrongTopics) != 1 || verbal.StrongTopics[0] != "Verbal" {
		t.Errorf("Expected Verbal to list itself as strong, got %v", verbal.StrongTopics)
	}
}

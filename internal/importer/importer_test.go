package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assessment-service/internal/models"

	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	created []models.Question
	failOn  string
}

func (s *fakeStore) CreateQuestion(ctx context.Context, question *models.Question) error {
	if s.failOn != "" && question.Prompt == s.failOn {
		return errors.New("insert rejected")
	}
	s.created = append(s.created, *question)
	return nil
}

func writeCSV(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("Failed to write csv fixture: %v", err)
	}
	return path
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("Failed to build cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("Failed to set cell %s: %v", name, err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save xlsx fixture: %v", err)
	}
	return path
}

const header = "category,topic,prompt,option_a,option_b,option_c,option_d,correct_answer,difficulty"

func TestImportCSV(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		"Quantitative,Arithmetic,What is 2+2?,1,2,3,4,4,easy",
		"Verbal,Vocabulary,Pick the synonym of rapid,slow,fast,late,dull,fast,medium",
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.TotalProcessed != 2 {
		t.Errorf("Expected 2 processed rows, got %d", result.TotalProcessed)
	}
	if result.Created != 2 {
		t.Errorf("Expected 2 created questions, got %d", result.Created)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}
	if len(store.created) != 2 {
		t.Fatalf("Expected 2 stored questions, got %d", len(store.created))
	}

	first := store.created[0]
	if first.Category != "Quantitative" {
		t.Errorf("Expected category Quantitative, got %s", first.Category)
	}
	if first.Topic != "Arithmetic" {
		t.Errorf("Expected topic Arithmetic, got %s", first.Topic)
	}
	if len(first.Options) != 4 {
		t.Errorf("Expected 4 options, got %d", len(first.Options))
	}
	if first.CorrectAnswer != "4" {
		t.Errorf("Expected correct answer 4, got %s", first.CorrectAnswer)
	}
	if first.Difficulty != "easy" {
		t.Errorf("Expected difficulty easy, got %s", first.Difficulty)
	}
	if first.Status != models.QuestionStatusActive {
		t.Errorf("Expected status active, got %s", first.Status)
	}
}

func TestImportTrimsCells(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		" Logical , Patterns , Next in 2 4 8? , 10 , 12 , 16 , 20 , 16 , hard ",
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Expected 1 created question, got %d (errors: %v)", result.Created, result.Errors)
	}

	q := store.created[0]
	if q.Category != "Logical" {
		t.Errorf("Expected trimmed category Logical, got %q", q.Category)
	}
	if q.CorrectAnswer != "16" {
		t.Errorf("Expected trimmed answer 16, got %q", q.CorrectAnswer)
	}
	if q.Difficulty != "hard" {
		t.Errorf("Expected trimmed difficulty hard, got %q", q.Difficulty)
	}
}

func TestImportDefaultsDifficulty(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		"Technical,Networking,Which port does HTTP use?,21,22,80,443,80",
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Expected 1 created question, got %d (errors: %v)", result.Created, result.Errors)
	}
	if store.created[0].Difficulty != models.DefaultDifficulty {
		t.Errorf("Expected default difficulty %s, got %s", models.DefaultDifficulty, store.created[0].Difficulty)
	}
}

func TestImportRowFailuresDoNotAbort(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		"History,Dates,When did it happen?,1900,1910,1920,1930,1910,easy",
		"Verbal,Vocabulary,Rejected by store,slow,fast,late,dull,fast,medium",
		"Quantitative,Arithmetic,What is 3+3?,4,5,6,7,6,easy",
	})
	store := &fakeStore{failOn: "Rejected by store"}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.TotalProcessed != 3 {
		t.Errorf("Expected 3 processed rows, got %d", result.TotalProcessed)
	}
	if result.Created != 1 {
		t.Errorf("Expected 1 created question, got %d", result.Created)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("Expected 2 row errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "row 2:") {
		t.Errorf("Expected first error tagged with row 2, got %q", result.Errors[0])
	}
	if !strings.HasPrefix(result.Errors[1], "row 3:") {
		t.Errorf("Expected second error tagged with row 3, got %q", result.Errors[1])
	}
	if len(store.created) != 1 || store.created[0].Prompt != "What is 3+3?" {
		t.Errorf("Expected the valid row to be stored, got %+v", store.created)
	}
}

func TestImportSkipsBlankRows(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		",,,,,,,,",
		"Quantitative,Arithmetic,What is 2+2?,1,2,3,4,4,easy",
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped row, got %d", result.Skipped)
	}
	if result.Created != 1 {
		t.Errorf("Expected 1 created question, got %d", result.Created)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}
}

func TestImportXLSX(t *testing.T) {
	path := writeXLSX(t, [][]string{
		{"category", "topic", "prompt", "option_a", "option_b", "option_c", "option_d", "correct_answer", "difficulty"},
		{"Quantitative", "Arithmetic", "What is 5+5?", "8", "9", "10", "11", "10", "easy"},
		{"Logical", "Patterns", "Odd one out of 2 3 5 9?", "2", "3", "5", "9", "9", "medium"},
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("Expected 2 created questions, got %d (errors: %v)", result.Created, result.Errors)
	}
	if store.created[0].Prompt != "What is 5+5?" {
		t.Errorf("Expected first prompt from sheet, got %q", store.created[0].Prompt)
	}
	if store.created[1].Category != "Logical" {
		t.Errorf("Expected second category Logical, got %q", store.created[1].Category)
	}
}

func TestImportMissingColumns(t *testing.T) {
	path := writeCSV(t, []string{
		header,
		"Quantitative,Arithmetic,Truncated row,1,2",
	})
	store := &fakeStore{}

	result, err := ImportQuestions(context.Background(), path, store)
	if err != nil {
		t.Fatalf("ImportQuestions returned error: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("Expected no created questions, got %d", result.Created)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "columns") {
		t.Errorf("Expected a column count error, got %q", result.Errors[0])
	}
}

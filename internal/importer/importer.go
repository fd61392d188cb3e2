package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"assessment-service/internal/models"

	"github.com/xuri/excelize/v2"
)

// Column layout for bulk uploads, header row first:
// category, topic, prompt, option_a, option_b, option_c, option_d,
// correct_answer, difficulty (optional)
const minColumns = 8

// ImportResult summarizes one bulk upload.
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}

// QuestionStore is the slice of the question service the importer needs.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
}

// ImportQuestions loads questions from a .csv or .xlsx file. Rows that
// fail validation or insertion are reported in Errors without aborting
// the remaining rows.
func ImportQuestions(ctx context.Context, path string, store QuestionStore) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importCSV(ctx, path, store)
	default:
		return importXLSX(ctx, path, store)
	}
}

func importCSV(ctx context.Context, path string, store QuestionStore) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %v", err)
	}
	return importRows(ctx, rows, store)
}

func importXLSX(ctx context.Context, path string, store QuestionStore) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", sheet, err)
	}
	return importRows(ctx, rows, store)
}

func importRows(ctx context.Context, rows [][]string, store QuestionStore) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		result.TotalProcessed++
		if isBlank(row) {
			result.Skipped++
			continue
		}
		question, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := store.CreateQuestion(ctx, question); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

func parseRow(row []string) (*models.Question, error) {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = strings.TrimSpace(cell)
	}
	if len(cells) < minColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(cells))
	}

	question := &models.Question{
		Category:      cells[0],
		Topic:         cells[1],
		Prompt:        cells[2],
		Options:       []string{},
		CorrectAnswer: cells[7],
	}
	for _, option := range cells[3:7] {
		if option != "" {
			question.Options = append(question.Options, option)
		}
	}
	if len(cells) > 8 {
		question.Difficulty = cells[8]
	}

	question.EnsureDefaults()
	if err := question.Validate(); err != nil {
		return nil, err
	}
	return question, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

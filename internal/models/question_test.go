package models

import (
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		Category:      "Quantitative",
		Topic:         "Arithmetic",
		Prompt:        "What is 2+2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
		Difficulty:    "easy",
	}

	testCases := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid question", func(q *Question) {}, false},
		{"unknown category", func(q *Question) { q.Category = "History" }, true},
		{"reserved overall category", func(q *Question) { q.Category = OverallCategory }, true},
		{"empty prompt", func(q *Question) { q.Prompt = "" }, true},
		{"single option", func(q *Question) { q.Options = []string{"4"} }, true},
		{"correct answer not an option", func(q *Question) { q.CorrectAnswer = "7" }, true},
		{"unknown difficulty", func(q *Question) { q.Difficulty = "extreme" }, true},
		{"empty difficulty allowed", func(q *Question) { q.Difficulty = "" }, false},
		{"two options enough", func(q *Question) {
			q.Options = []string{"4", "5"}
			q.CorrectAnswer = "5"
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			question := valid
			question.Options = append([]string{}, valid.Options...)
			tc.mutate(&question)

			err := question.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("Expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestQuestionEnsureDefaults(t *testing.T) {
	question := Question{
		Category:      "Verbal",
		Prompt:        "Pick the synonym of big",
		Options:       []string{"large", "tiny"},
		CorrectAnswer: "large",
	}

	question.EnsureDefaults()

	if question.Difficulty != DefaultDifficulty {
		t.Errorf("Expected difficulty %q, got %q", DefaultDifficulty, question.Difficulty)
	}
	if question.Status != "active" {
		t.Errorf("Expected status active, got %q", question.Status)
	}

	// Explicit values survive
	question.Difficulty = "hard"
	question.EnsureDefaults()
	if question.Difficulty != "hard" {
		t.Errorf("Expected difficulty hard to be kept, got %q", question.Difficulty)
	}
}

func TestQuestionPublicHidesAnswer(t *testing.T) {
	question := Question{
		ID:            "q1",
		Category:      "Technical",
		Topic:         "Networking",
		Prompt:        "Default HTTPS port?",
		Options:       []string{"80", "443", "8080"},
		CorrectAnswer: "443",
		Difficulty:    "easy",
	}

	public := question.Public()

	if public.ID != question.ID {
		t.Errorf("Expected id %q, got %q", question.ID, public.ID)
	}
	if len(public.Options) != 3 {
		t.Errorf("Expected 3 options, got %d", len(public.Options))
	}
}

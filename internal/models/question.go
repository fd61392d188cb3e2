package models

import (
	"fmt"
	"time"
)

type Question struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Category      string    `bson:"category" json:"category"`
	Topic         string    `bson:"topic" json:"topic"`
	Prompt        string    `bson:"prompt" json:"prompt"`
	Options       []string  `bson:"options" json:"options"`
	CorrectAnswer string    `bson:"correct_answer" json:"correct_answer"`
	Difficulty    string    `bson:"difficulty" json:"difficulty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// QuestionPublic is the test-taker view of a question. The correct answer
// never leaves the service through this shape.
type QuestionPublic struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Topic      string   `json:"topic"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// Categories is the closed set administrators may assign to questions
var Categories = []string{
	"Quantitative",
	"Logical",
	"Verbal",
	"Technical",
}

// OverallCategory is reserved for whole-test snapshots and can never be
// used as a question category
const OverallCategory = "Overall"

// Difficulties lists the accepted difficulty levels
var Difficulties = []string{"easy", "medium", "hard"}

const DefaultDifficulty = "medium"

const (
	QuestionStatusActive  = "active"
	QuestionStatusDeleted = "deleted"
)

func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func IsValidDifficulty(level string) bool {
	for _, d := range Difficulties {
		if d == level {
			return true
		}
	}
	return false
}

// EnsureDefaults fills optional fields before a question is stored
func (q *Question) EnsureDefaults() {
	if q.Difficulty == "" {
		q.Difficulty = DefaultDifficulty
	}
	if q.Status == "" {
		q.Status = QuestionStatusActive
	}
}

// Validate checks the admin-facing invariants: category from the closed set,
// at least two options, and a correct answer that is literally one of them.
func (q *Question) Validate() error {
	if q.Category == OverallCategory {
		return fmt.Errorf("category %q is reserved", OverallCategory)
	}
	if !IsValidCategory(q.Category) {
		return fmt.Errorf("unknown category %q", q.Category)
	}
	if q.Prompt == "" {
		return fmt.Errorf("question prompt is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question needs at least 2 options, got %d", len(q.Options))
	}
	if !q.hasOption(q.CorrectAnswer) {
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
	}
	if q.Difficulty != "" && !IsValidDifficulty(q.Difficulty) {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	return nil
}

func (q *Question) hasOption(text string) bool {
	for _, opt := range q.Options {
		if opt == text {
			return true
		}
	}
	return false
}

// Public strips grading data for delivery to a test-taker
func (q *Question) Public() QuestionPublic {
	return QuestionPublic{
		ID:         q.ID,
		Category:   q.Category,
		Topic:      q.Topic,
		Prompt:     q.Prompt,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}

package models

import "time"

// TestSession tracks one attempt at a diagnostic test, from question
// selection through submission. The final report is embedded on completion
// so the result view never depends on the snapshot writes having succeeded.
type TestSession struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	UserID       string       `bson:"user_id" json:"user_id"`
	SessionToken string       `bson:"session_token" json:"session_token"`
	QuestionIDs  []string     `bson:"question_ids" json:"question_ids"`
	Status       string       `bson:"status" json:"status"`
	StartedAt    time.Time    `bson:"started_at" json:"started_at"`
	CompletedAt  time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Report       *ScoreReport `bson:"report,omitempty" json:"report,omitempty"`
}

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

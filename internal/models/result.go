package models

import "time"

// CategoryScore is one category's tally within a scored test
type CategoryScore struct {
	Category   string `bson:"category" json:"category"`
	Correct    int    `bson:"correct" json:"correct"`
	Total      int    `bson:"total" json:"total"`
	Percentage int    `bson:"percentage" json:"percentage"`
	IsStrong   bool   `bson:"is_strong" json:"is_strong"`
	IsWeak     bool   `bson:"is_weak" json:"is_weak"`
}

// ScoreReport is the full outcome of one scored test. Categories keep the
// order in which they first appeared in the question sequence.
type ScoreReport struct {
	TotalScore     int             `bson:"total_score" json:"total_score"`
	TotalCorrect   int             `bson:"total_correct" json:"total_correct"`
	TotalQuestions int             `bson:"total_questions" json:"total_questions"`
	Categories     []CategoryScore `bson:"categories" json:"categories"`
	StrongTopics   []string        `bson:"strong_topics" json:"strong_topics"`
	WeakTopics     []string        `bson:"weak_topics" json:"weak_topics"`
}

// ResultSnapshot is the append-only persisted form of a score. One snapshot
// per test carries the Overall category, plus one per category in the test.
type ResultSnapshot struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	SessionID      string    `bson:"session_id" json:"session_id"`
	Category       string    `bson:"category" json:"category"`
	Score          int       `bson:"score" json:"score"`
	TotalQuestions int       `bson:"total_questions" json:"total_questions"`
	Accuracy       int       `bson:"accuracy" json:"accuracy"`
	WeakTopics     []string  `bson:"weak_topics" json:"weak_topics"`
	StrongTopics   []string  `bson:"strong_topics" json:"strong_topics"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

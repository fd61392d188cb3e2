package models

import "time"

type AnswerRecord struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	QuestionID     string    `bson:"question_id" json:"question_id"`
	SelectedAnswer string    `bson:"selected_answer" json:"selected_answer"`
	IsCorrect      bool      `bson:"is_correct" json:"is_correct"`
	AnsweredAt     time.Time `bson:"answered_at" json:"answered_at"`
}

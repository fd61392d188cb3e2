package scoring

import (
	"errors"
	"math"

	"assessment-service/internal/models"
)

// Classification thresholds, applied to the rounded percentage
const (
	StrongThreshold = 70
	WeakThreshold   = 50
)

var (
	// ErrIncompleteSubmission means at least one question has no selected
	// option; the caller must collect the missing answers and retry
	ErrIncompleteSubmission = errors.New("submission has unanswered questions")

	// ErrEmptyQuestionSet guards the zero-question case, which indicates a
	// caller bug rather than a user mistake
	ErrEmptyQuestionSet = errors.New("cannot score an empty question set")
)

// Score grades a completed test. selected holds one option text per
// question, in the same order the questions were presented. Correctness is
// exact string equality against the stored correct answer. Categories are
// tallied in first-seen order so identical inputs always produce identical
// reports.
func Score(questions []models.Question, selected []string) (*models.ScoreReport, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	if len(selected) != len(questions) {
		return nil, ErrIncompleteSubmission
	}
	for _, answer := range selected {
		if answer == "" {
			return nil, ErrIncompleteSubmission
		}
	}

	tallies := make([]models.CategoryScore, 0)
	position := make(map[string]int)
	totalCorrect := 0

	for i, question := range questions {
		pos, seen := position[question.Category]
		if !seen {
			pos = len(tallies)
			position[question.Category] = pos
			tallies = append(tallies, models.CategoryScore{Category: question.Category})
		}
		tallies[pos].Total++
		if selected[i] == question.CorrectAnswer {
			tallies[pos].Correct++
			totalCorrect++
		}
	}

	report := &models.ScoreReport{
		TotalScore:     roundPercent(totalCorrect, len(questions)),
		TotalCorrect:   totalCorrect,
		TotalQuestions: len(questions),
		Categories:     make([]models.CategoryScore, 0, len(tallies)),
		StrongTopics:   make([]string, 0),
		WeakTopics:     make([]string, 0),
	}

	for _, tally := range tallies {
		tally.Percentage = roundPercent(tally.Correct, tally.Total)
		// Round first, then classify: boundary values are decided on the
		// integer percentage
		tally.IsStrong = tally.Percentage >= StrongThreshold
		tally.IsWeak = tally.Percentage < WeakThreshold
		report.Categories = append(report.Categories, tally)

		if tally.IsStrong {
			report.StrongTopics = append(report.StrongTopics, tally.Category)
		}
		if tally.IsWeak {
			report.WeakTopics = append(report.WeakTopics, tally.Category)
		}
	}

	return report, nil
}

// roundPercent computes round-half-up(100 * correct / total)
func roundPercent(correct, total int) int {
	return int(math.Round(100 * float64(correct) / float64(total)))
}

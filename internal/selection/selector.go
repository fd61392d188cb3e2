package selection

import (
	"math/rand"
	"time"

	"assessment-service/internal/models"
)

// Selector handles randomized question selection for a test
type Selector struct {
	rand *rand.Rand
}

// NewSelector creates a new selector
func NewSelector() *Selector {
	return &Selector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildTest produces the ordered question set for one test session.
// It prefers questions the user has never answered; when fewer than the
// target remain unanswered the exclusion is discarded and the whole pool
// becomes available again. A finite pool cannot sustain no-repeat tests
// forever, so a user may see old questions again rather than be blocked.
// Pure function of its inputs aside from shuffle order.
func (s *Selector) BuildTest(pool []models.Question, answeredIDs []string, target int) []models.Question {
	if len(pool) == 0 || target <= 0 {
		return []models.Question{}
	}

	available := s.filterAnswered(pool, answeredIDs)

	// Exhaustion fallback: reset the exclusion when it leaves too little
	if len(available) < target {
		available = make([]models.Question, len(pool))
		copy(available, pool)
	}

	s.shuffle(available)

	if target > len(available) {
		target = len(available)
	}
	return available[:target]
}

// filterAnswered returns the pool minus already-answered questions
func (s *Selector) filterAnswered(pool []models.Question, answeredIDs []string) []models.Question {
	// Map for O(1) lookup
	answered := make(map[string]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	available := make([]models.Question, 0, len(pool))
	for _, question := range pool {
		if !answered[question.ID] {
			available = append(available, question)
		}
	}
	return available
}

// shuffle randomizes question order in place (Fisher-Yates)
func (s *Selector) shuffle(questions []models.Question) {
	for i := len(questions) - 1; i > 0; i-- {
		j := s.rand.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}

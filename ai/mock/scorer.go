package mock

import (
	"context"
	"sync"

	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/core"
)

// Scorer is a test double for ai.DocumentScorer.
// It allows custom behavior injection via function fields and doubles as the
// pipeline's mock mode: a fixed canned answer set for every document,
// letting runs complete without incurring remote calls.
type Scorer struct {
	// ScoreFunc is called by ScoreDocument if set.
	// If nil, the default canned scoring is used.
	ScoreFunc func(ctx context.Context, content string, questionnaire *core.Questionnaire) ([]core.AnswerRecord, error)

	mu        sync.Mutex
	callCount int
}

var _ ai.DocumentScorer = (*Scorer)(nil)

// NewScorer creates a mock scorer with default canned behavior.
// Note: returns the concrete type to allow test assertions.
func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreDocument returns one canned answer per question.
// Default behavior: every question scores 7 with a fixed rationale.
func (s *Scorer) ScoreDocument(ctx context.Context, content string, questionnaire *core.Questionnaire) ([]core.AnswerRecord, error) {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	if s.ScoreFunc != nil {
		return s.ScoreFunc(ctx, content, questionnaire)
	}

	answers := make([]core.AnswerRecord, 0, questionnaire.Len())
	for _, question := range questionnaire.Questions {
		answers = append(answers, core.AnswerRecord{
			Key:       question.Key,
			Question:  question.Text,
			Score:     7,
			Rationale: "Canned mock answer.",
			Quotes:    []string{},
		})
	}

	return answers, nil
}

// CallCount returns the number of times ScoreDocument was called.
func (s *Scorer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Reset clears the call count and custom functions.
func (s *Scorer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
	s.ScoreFunc = nil
}

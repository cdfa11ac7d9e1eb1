package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// Question is one entry of the questionnaire: a stable key, the question
// text sent to the scoring service, and optional scoring criteria that are
// passed through to the service verbatim.
type Question struct {
	Key      string         `json:"key"`
	Text     string         `json:"question"`
	Criteria map[string]any `json:"criteria,omitempty"`
}

// Questionnaire is the fixed, ordered list of questions every document is
// scored against. It is loaded once at startup and read-only afterwards;
// all enrichment requests share it by reference.
type Questionnaire struct {
	Questions []Question

	keys map[string]struct{}
}

// NewQuestionnaire builds a questionnaire from an ordered question list.
func NewQuestionnaire(questions []Question) (*Questionnaire, error) {
	q := &Questionnaire{
		Questions: questions,
		keys:      make(map[string]struct{}, len(questions)),
	}

	for _, question := range questions {
		if question.Key == "" {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuestionnaire, ErrEmptyQuestionKey)
		}
		if _, exists := q.keys[question.Key]; exists {
			return nil, fmt.Errorf("%w: %w: %q", ErrInvalidQuestionnaire, ErrDuplicateQuestionKey, question.Key)
		}
		q.keys[question.Key] = struct{}{}
	}

	return q, nil
}

// LoadQuestionnaire reads a questionnaire from a JSON file containing an
// ordered array of question objects.
func LoadQuestionnaire(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse questionnaire: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in %s", ErrInvalidQuestionnaire, path)
	}

	return NewQuestionnaire(questions)
}

// HasKey reports whether the questionnaire contains a question with the given key.
func (q *Questionnaire) HasKey(key string) bool {
	_, ok := q.keys[key]
	return ok
}

// Len returns the number of questions.
func (q *Questionnaire) Len() int {
	return len(q.Questions)
}

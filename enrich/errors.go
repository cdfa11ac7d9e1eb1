package enrich

import "errors"

var (
	// ErrScorerRequired is returned when a document scorer is not provided.
	ErrScorerRequired = errors.New("document scorer required")

	// ErrAnswerCacheRequired is returned when an answer cache is not provided.
	ErrAnswerCacheRequired = errors.New("answer cache required")

	// ErrQuestionnaireRequired is returned when a questionnaire is not provided.
	ErrQuestionnaireRequired = errors.New("questionnaire required")

	// ErrDocumentTooLong indicates a document over the token limit.
	// This is a local pre-flight decision; no remote call is made.
	ErrDocumentTooLong = errors.New("the document is too long to process")

	// ErrInvalidMaxAttempts is returned for a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)

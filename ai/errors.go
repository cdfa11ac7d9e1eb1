package ai

import "errors"

var (
	// ErrMalformedResponse indicates the scoring service returned a payload
	// that did not parse into the expected answer structure.
	ErrMalformedResponse = errors.New("malformed scoring response")

	// ErrEmptyResponse indicates the scoring service returned no answers.
	ErrEmptyResponse = errors.New("empty scoring response")
)

package ai

import (
	"context"

	"github.com/poiesic/docscore/core"
)

// DocumentScorer answers the full questionnaire for one document in a single
// remote call. The call is atomic: it returns either one AnswerRecord per
// question the service answered, or an error for the whole document.
// Implementations must be thread-safe for concurrent use.
type DocumentScorer interface {
	// ScoreDocument sends the document content and the questionnaire to the
	// scoring service and returns the answers in questionnaire order as
	// produced by the service.
	//
	// Transport and service errors are returned as-is; a response that does
	// not parse into the expected structure, or is empty, is returned as an
	// error wrapping ErrMalformedResponse.
	ScoreDocument(ctx context.Context, content string, questionnaire *core.Questionnaire) ([]core.AnswerRecord, error)
}

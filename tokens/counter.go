package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultProfile is the tokenizer profile used when none is configured.
// It matches the model family the scoring service is prompted as.
const DefaultProfile = "gpt-4-turbo"

// Counter counts tokens in text for a fixed tokenizer profile.
// Counting is pure: the same text always yields the same count.
// Implementations must be thread-safe for concurrent use.
type Counter interface {
	// Count returns the number of tokens in text. The count is >= 0.
	Count(text string) (int, error)
}

// TiktokenCounter implements Counter using the tiktoken BPE vocabularies.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

var _ Counter = (*TiktokenCounter)(nil)

// NewCounter creates a token counter for the given model profile
// (e.g. "gpt-4-turbo"). The profile's BPE vocabulary is resolved once here;
// Count never performs I/O afterwards.
//
// Returns Counter interface to enforce abstraction.
func NewCounter(profile string) (Counter, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	encoding, err := tiktoken.EncodingForModel(profile)
	if err != nil {
		return nil, fmt.Errorf("tokenizer profile %q: %w", profile, err)
	}

	return &TiktokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text.
func (c *TiktokenCounter) Count(text string) (int, error) {
	return len(c.encoding.Encode(text, nil, nil)), nil
}

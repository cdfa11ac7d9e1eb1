// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateEnrichmentResult validates a scoring payload against the questionnaire.
//
// Validation rules:
//   - Answers must not be empty
//   - Every answer key must exist in the questionnaire
//   - Every score must be within 0-10
//
// NOT validated:
//   - Completeness (a result answering a subset of the questionnaire is
//     accepted; the remote call is atomic, so a present result is the
//     service's full response for that document)
//   - Rationale and quote content
func ValidateEnrichmentResult(result *EnrichmentResult, questionnaire *Questionnaire) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidEnrichmentResult)
	}

	if len(result.Answers) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEnrichmentResult, ErrNoAnswers)
	}

	for _, answer := range result.Answers {
		if !questionnaire.HasKey(answer.Key) {
			return fmt.Errorf("%w: %w: %q", ErrInvalidEnrichmentResult, ErrUnknownQuestionKey, answer.Key)
		}
		if answer.Score < 0 || answer.Score > 10 {
			return fmt.Errorf("%w: %w: %q scored %d", ErrInvalidEnrichmentResult, ErrScoreOutOfRange, answer.Key, answer.Score)
		}
	}

	return nil
}

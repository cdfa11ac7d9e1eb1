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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEnrichmentResult indicates an EnrichmentResult failed validation.
	ErrInvalidEnrichmentResult = errors.New("invalid enrichment result")

	// ErrNoAnswers indicates a result with an empty answer set.
	ErrNoAnswers = errors.New("result contains no answers")

	// ErrUnknownQuestionKey indicates an answer to a question outside the questionnaire.
	ErrUnknownQuestionKey = errors.New("answer references unknown question key")

	// ErrScoreOutOfRange indicates a score outside 0-10.
	ErrScoreOutOfRange = errors.New("score must be between 0 and 10")

	// ErrInvalidQuestionnaire indicates a questionnaire failed validation.
	ErrInvalidQuestionnaire = errors.New("invalid questionnaire")

	// ErrEmptyQuestionKey indicates a question with an empty key.
	ErrEmptyQuestionKey = errors.New("question key cannot be empty")

	// ErrDuplicateQuestionKey indicates two questions sharing a key.
	ErrDuplicateQuestionKey = errors.New("duplicate question key")
)

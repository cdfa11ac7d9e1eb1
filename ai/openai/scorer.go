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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Scorer implements ai.DocumentScorer using OpenAI-compatible chat APIs.
type Scorer struct {
	client          llms.Model
	temperature     float64
	maxAnswerTokens int
	logger          *slog.Logger
}

// scoredResponse is the wrapper structure for the LLM's JSON response.
type scoredResponse struct {
	Answers []core.AnswerRecord `json:"answers"`
}

// newScorer is an internal constructor that returns the concrete type.
func newScorer(config *ai.Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Scorer{
		client:          client,
		temperature:     config.Temperature,
		maxAnswerTokens: config.MaxAnswerTokens,
		logger:          slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewScorer creates a document scorer using the provided configuration.
//
// Returns ai.DocumentScorer interface to enforce abstraction.
func NewScorer(config *ai.Config) (ai.DocumentScorer, error) {
	return newScorer(config)
}

// ScoreDocument answers the questionnaire for one document in a single
// chat completion. The response must be a JSON object with one answer per
// question; anything else is reported as ai.ErrMalformedResponse.
func (s *Scorer) ScoreDocument(ctx context.Context, content string, questionnaire *core.Questionnaire) ([]core.AnswerRecord, error) {
	questionsJSON, err := json.Marshal(questionnaire.Questions)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(scoringPromptTemplate, scoringResponseSchema, questionsJSON, content)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart("You are a helpful assistant."),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, messages,
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxAnswerTokens),
		llms.WithJSONMode())
	if err != nil {
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: no choices returned", ai.ErrEmptyResponse)
	}

	answers, err := parseScoredResponse(response.Choices[0].Content)
	if err != nil {
		s.logger.Warn("unparseable scoring response", "err", err)
		return nil, err
	}

	return answers, nil
}

// parseScoredResponse extracts the answer set from the model's raw output,
// tolerating markdown code fences and common JSON slips.
func parseScoredResponse(raw string) ([]core.AnswerRecord, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" || text == "null" {
		return nil, ai.ErrEmptyResponse
	}

	text = repairJSON(text)

	var parsed scoredResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}

	if len(parsed.Answers) == 0 {
		return nil, ai.ErrEmptyResponse
	}

	return parsed.Answers, nil
}

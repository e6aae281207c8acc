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
	"log/slog"
	"strings"

	"github.com/poiesic/pinpoint/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ValueExtractor implements ai.ValueExtractor using OpenAI-compatible chat APIs.
type ValueExtractor struct {
	client        llms.Model
	maxCandidates int
	logger        *slog.Logger
}

// candidate is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type candidate struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Start *int   `json:"start,omitempty"`
	End   *int   `json:"end,omitempty"`
}

// extraction is the wrapper structure for the LLM's JSON response.
type extraction struct {
	Candidates []candidate `json:"candidates"`
}

// newValueExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newValueExtractor(config *ai.Config) (*ValueExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &ValueExtractor{
		client:        client,
		maxCandidates: config.MaxCandidates,
		logger:        slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewValueExtractor creates a new value extractor using the provided configuration.
//
// Returns ai.ValueExtractor interface to enforce abstraction.
func NewValueExtractor(config *ai.Config) (ai.ValueExtractor, error) {
	return newValueExtractor(config)
}

// ExtractValues asks the model which values in the document answer the query.
// Candidates are returned as proposed; verifying them against the document is
// the caller's responsibility.
func (e *ValueExtractor) ExtractValues(ctx context.Context, query, document string) ([]ai.Candidate, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(e.maxCandidates)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(query, document)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []ai.Candidate{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing oracle response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse oracle response after retries", "err", lastErr)
		return nil, lastErr
	}

	candidates := make([]ai.Candidate, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		if strings.TrimSpace(c.Value) == "" {
			continue
		}
		out := ai.Candidate{
			Label: strings.TrimSpace(c.Label),
			Value: c.Value,
			Start: -1,
			End:   -1,
		}
		if c.Start != nil && c.End != nil && *c.Start >= 0 && *c.End > *c.Start {
			out.Start = *c.Start
			out.End = *c.End
		}
		candidates = append(candidates, out)
		if len(candidates) >= e.maxCandidates {
			break
		}
	}

	e.logger.Debug("extracted candidates",
		"proposed", len(result.Candidates),
		"kept", len(candidates))
	return candidates, nil
}

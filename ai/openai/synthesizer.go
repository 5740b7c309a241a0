// Copyright 2026 NoteSpace Labs
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
	"log/slog"
	"strings"

	"github.com/notespace/metadoc/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Synthesizer implements ai.Synthesizer using OpenAI-compatible chat APIs.
type Synthesizer struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

var _ ai.Synthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a synthesizer from the provided configuration.
// The config is validated before use.
func NewSynthesizer(config *ai.Config) (*Synthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		client:      client,
		temperature: config.Temperature,
		maxTokens:   config.MaxOutputTokens,
		logger:      slog.Default().With("component", "openai-synthesizer"),
	}, nil
}

// Synthesize sends every chunk in a single request and returns the model's
// merged study notes together with reported token usage.
func (s *Synthesizer) Synthesize(ctx context.Context, chunks []string, topicName string) (*ai.SynthesisResult, error) {
	if len(chunks) == 0 {
		return nil, ai.ErrNoChunks
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(chunks, topicName))},
		},
	}

	s.logger.Debug("synthesizing notes", "topic", topicName, "chunks", len(chunks))

	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		s.logger.Error("failed to generate content", "topic", topicName, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, ai.ErrEmptyResponse
	}
	choice := response.Choices[0]

	notes := strings.TrimSpace(choice.Content)
	if notes == "" {
		return nil, ai.ErrEmptyResponse
	}

	return &ai.SynthesisResult{
		Content:     notes,
		TotalTokens: totalTokens(choice),
	}, nil
}

// totalTokens pulls reported usage out of the generation info. Services
// that omit usage yield 0.
func totalTokens(choice *llms.ContentChoice) int {
	if choice.GenerationInfo == nil {
		return 0
	}
	if v, ok := choice.GenerationInfo["TotalTokens"].(int); ok {
		return v
	}
	return 0
}

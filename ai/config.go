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


package ai

import "errors"

// Config holds configuration for the synthesis service.
type Config struct {
	// APIKey authenticates against the service. Required.
	APIKey string

	// BaseURL overrides the service endpoint. Empty means the provider
	// default; set it to point at an OpenAI-compatible local server.
	BaseURL string

	// Model is the chat model used for synthesis.
	// Default: "gpt-4-turbo-preview"
	Model string

	// Temperature controls sampling randomness. Default: 0.7
	Temperature float64

	// MaxOutputTokens bounds the synthesized response length.
	// Default: 4000
	MaxOutputTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the service API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets an alternative service endpoint.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithModel sets the synthesis model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxOutputTokens sets the response length bound.
func WithMaxOutputTokens(tokens int) ConfigOption {
	return func(c *Config) {
		c.MaxOutputTokens = tokens
	}
}

// DefaultConfig returns a Config with the default synthesis settings.
// The API key has no default and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		Model:           "gpt-4-turbo-preview",
		Temperature:     0.7,
		MaxOutputTokens: 4000,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxOutputTokens <= 0 {
		return errors.New("ai config: MaxOutputTokens must be positive")
	}
	return nil
}

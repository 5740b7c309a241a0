package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gpt-4-turbo-preview", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 4000, cfg.MaxOutputTokens)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("sk-test"),
		WithBaseURL("http://localhost:11434/v1"),
		WithModel("gpt-4o-mini"),
		WithTemperature(0.2),
		WithMaxOutputTokens(1000),
	)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 1000, cfg.MaxOutputTokens)
}

func TestValidate(t *testing.T) {
	valid := NewConfig(WithAPIKey("sk-test"))
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"missing api key", NewConfig()},
		{"missing model", NewConfig(WithAPIKey("sk-test"), WithModel(""))},
		{"negative temperature", NewConfig(WithAPIKey("sk-test"), WithTemperature(-0.1))},
		{"temperature too high", NewConfig(WithAPIKey("sk-test"), WithTemperature(2.5))},
		{"zero output tokens", NewConfig(WithAPIKey("sk-test"), WithMaxOutputTokens(0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

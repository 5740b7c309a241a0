package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/notespace/metadoc/ai"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via function fields.
type MockSynthesizer struct {
	// SynthesizeFunc is called by Synthesize if set.
	// If nil, a deterministic concatenation of the chunks is returned.
	SynthesizeFunc func(ctx context.Context, chunks []string, topicName string) (*ai.SynthesisResult, error)

	callCount int
}

var _ ai.Synthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a mock synthesizer with default behavior.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize returns deterministic notes built from the chunks.
func (m *MockSynthesizer) Synthesize(ctx context.Context, chunks []string, topicName string) (*ai.SynthesisResult, error) {
	m.callCount++

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, chunks, topicName)
	}

	if len(chunks) == 0 {
		return nil, ai.ErrNoChunks
	}

	return &ai.SynthesisResult{
		Content:     fmt.Sprintf("Notes for %s:\n%s", topicName, strings.Join(chunks, "\n")),
		TotalTokens: len(chunks) * 10,
	}, nil
}

// CallCount returns the number of times Synthesize was called.
func (m *MockSynthesizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSynthesizer) Reset() {
	m.callCount = 0
	m.SynthesizeFunc = nil
}

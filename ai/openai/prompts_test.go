package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPromptLabelsChunks(t *testing.T) {
	prompt := buildUserPrompt([]string{"first chunk", "second chunk"}, "Algorithms")

	assert.Contains(t, prompt, "Topic: Algorithms")
	assert.Contains(t, prompt, "Chunk 1:\nfirst chunk")
	assert.Contains(t, prompt, "Chunk 2:\nsecond chunk")
	assert.Contains(t, prompt, "\n\n---\n\n")
}

func TestBuildUserPromptSingleChunkHasNoDivider(t *testing.T) {
	prompt := buildUserPrompt([]string{"only chunk"}, "Databases")

	assert.Contains(t, prompt, "Chunk 1:\nonly chunk")
	assert.NotContains(t, prompt, "---")
}

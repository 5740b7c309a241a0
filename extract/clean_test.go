package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "already clean",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "collapses newlines and spaces",
			input:    "a\n\n\n\nb   c",
			expected: "a\n\nb c",
		},
		{
			name:     "trims lines",
			input:    "  leading\ntrailing  ",
			expected: "leading\ntrailing",
		},
		{
			name:     "whitespace-only line becomes a paragraph break",
			input:    "first\n   \t\nsecond",
			expected: "first\n\nsecond",
		},
		{
			name:     "preserves paragraph breaks",
			input:    "para one\nstill one\n\npara two",
			expected: "para one\nstill one\n\npara two",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t\n   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"a\n\n\n\nb   c",
		"first\n   \t\nsecond",
		"  messy   text \n\n\n with   gaps  ",
		"single line",
		"",
	}
	for _, input := range inputs {
		once := Clean(input)
		assert.Equal(t, once, Clean(once))
	}
}

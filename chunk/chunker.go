package chunk

import (
	"errors"
	"log/slog"
)

const (
	// DefaultMaxTokens is the largest token count allowed per segment.
	DefaultMaxTokens = 8000

	// DefaultOverlapTokens is the number of tokens repeated between
	// consecutive segments.
	DefaultOverlapTokens = 200
)

// ErrInvalidOverlap indicates an overlap that is not smaller than the
// segment size, which would make the window position never advance.
var ErrInvalidOverlap = errors.New("overlap must be smaller than max tokens")

// Chunker splits text into token-bounded segments.
type Chunker struct {
	counter   TokenCounter
	maxTokens int
	overlap   int
	logger    *slog.Logger
}

// NewChunker creates a Chunker with the default limits, preferring exact
// token counting and falling back to the character estimate when the
// encoding cannot be loaded.
func NewChunker() *Chunker {
	logger := slog.Default().With("component", "chunker")

	var counter TokenCounter
	exact, err := NewTiktokenCounter()
	if err != nil {
		logger.Warn("exact token encoding unavailable, using estimate", "error", err)
		counter = EstimateCounter{}
	} else {
		counter = exact
	}

	chunker, _ := NewChunkerWith(counter, DefaultMaxTokens, DefaultOverlapTokens)
	return chunker
}

// NewChunkerWith creates a Chunker with explicit limits.
func NewChunkerWith(counter TokenCounter, maxTokens, overlap int) (*Chunker, error) {
	if maxTokens <= 0 {
		return nil, errors.New("max tokens must be positive")
	}
	if overlap < 0 || overlap >= maxTokens {
		return nil, ErrInvalidOverlap
	}
	return &Chunker{
		counter:   counter,
		maxTokens: maxTokens,
		overlap:   overlap,
		logger:    slog.Default().With("component", "chunker"),
	}, nil
}

// Count returns the token count of text under the chunker's counter.
func (c *Chunker) Count(text string) int {
	return c.counter.Count(text)
}

// Split divides text into segments of at most maxTokens tokens, with
// consecutive segments sharing overlap tokens. Text within the limit comes
// back as a single segment; empty text yields no segments.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	total := c.counter.Count(text)
	if total <= c.maxTokens {
		return []string{text}
	}

	step := c.maxTokens - c.overlap
	var segments []string
	for start := 0; start < total; start += step {
		end := start + c.maxTokens
		if end > total {
			end = total
		}
		segments = append(segments, c.counter.Window(text, start, end))
		if end == total {
			break
		}
	}

	c.logger.Debug("split text", "tokens", total, "segments", len(segments))
	return segments
}

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


package chunk

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures and slices text in token units.
type TokenCounter interface {
	// Count returns the number of tokens in text.
	Count(text string) int

	// Window returns the text spanned by tokens [start, end), clamped to
	// the token length of text.
	Window(text string, start, end int) string
}

// encoder is the slice of tiktoken.Tiktoken the counter depends on.
type encoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// TiktokenCounter counts tokens with the cl100k_base BPE encoding, the
// encoding used by the GPT-4 model family.
type TiktokenCounter struct {
	encoding encoder

	// Splitting windows the same text many times; caching the last encoding
	// keeps that linear instead of re-encoding per window.
	mu         sync.Mutex
	cachedText string
	cached     []int
}

var _ TokenCounter = (*TiktokenCounter)(nil)

// NewTiktokenCounter loads the cl100k_base encoding. Loading can fail when
// the encoding data is unavailable, in which case callers should fall back
// to EstimateCounter.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

func (c *TiktokenCounter) Count(text string) int {
	return len(c.tokens(text))
}

func (c *TiktokenCounter) Window(text string, start, end int) string {
	tokens := c.tokens(text)
	start, end = clampWindow(start, end, len(tokens))
	return c.encoding.Decode(tokens[start:end])
}

func (c *TiktokenCounter) tokens(text string) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil || text != c.cachedText {
		c.cached = c.encoding.Encode(text, nil, nil)
		c.cachedText = text
	}
	return c.cached
}

// EstimateCounter approximates token counts as one token per four
// characters. It is the fallback when the exact encoding cannot be loaded.
type EstimateCounter struct{}

var _ TokenCounter = EstimateCounter{}

func (EstimateCounter) Count(text string) int {
	return (len([]rune(text)) + 3) / 4
}

func (EstimateCounter) Window(text string, start, end int) string {
	runes := []rune(text)
	total := (len(runes) + 3) / 4
	start, end = clampWindow(start, end, total)

	lo := start * 4
	hi := end * 4
	if lo > len(runes) {
		lo = len(runes)
	}
	if hi > len(runes) {
		hi = len(runes)
	}
	return string(runes[lo:hi])
}

func clampWindow(start, end, total int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end
}

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

import "context"

// SynthesisResult is the outcome of one synthesis call.
type SynthesisResult struct {
	// Content is the synthesized study notes.
	Content string

	// TotalTokens is the total token usage reported by the model,
	// 0 when the service does not report usage.
	TotalTokens int
}

// Synthesizer merges text chunks into a single set of study notes for a
// topic. Implementations must return ErrNoChunks for an empty chunk list
// and must not invent content beyond the provided chunks.
type Synthesizer interface {
	Synthesize(ctx context.Context, chunks []string, topicName string) (*SynthesisResult, error)
}

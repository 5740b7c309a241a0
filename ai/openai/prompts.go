package openai

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert study assistant. You will receive text extracted from a student's documents about a single topic, split into chunks. Synthesize the chunks into one coherent, well-organized set of study notes.

Guidelines:
- Merge overlapping material and remove duplicated passages.
- Organize the notes with clear headings and bullet points.
- Preserve every distinct fact, definition, and example from the source text.
- Do not invent information that is not present in the chunks.`

// buildUserPrompt labels each chunk and joins them with a visible divider so
// the model can tell chunk boundaries from document structure.
func buildUserPrompt(chunks []string, topicName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n\n", topicName)

	labeled := make([]string, len(chunks))
	for i, chunk := range chunks {
		labeled[i] = fmt.Sprintf("Chunk %d:\n%s", i+1, chunk)
	}
	sb.WriteString(strings.Join(labeled, "\n\n---\n\n"))

	return sb.String()
}

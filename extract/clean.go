package extract

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(` {2,}`)

// Clean normalizes extracted text: runs of spaces collapse to one, every
// line is trimmed, whitespace-only lines disappear, and paragraphs end up
// separated by exactly one blank line. Clean is idempotent and maps empty
// input to "".
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

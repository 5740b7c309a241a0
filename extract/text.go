package extract

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractText reads a plain text file. Files that are not valid UTF-8 are
// decoded as Latin-1, which accepts every byte sequence.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

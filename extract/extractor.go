package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from document files by format.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		logger: slog.Default().With("component", "extractor"),
	}
}

// Extract reads the file at path and returns its text content.
// The format is chosen from the lowercased file extension.
// Returns ErrFileNotFound when the file is missing and ErrUnsupportedType
// for extensions outside {.pdf, .docx, .txt}; parser failures are wrapped
// with the failing format.
func (e *Extractor) Extract(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	e.logger.Debug("extracting text", "path", path, "format", ext)

	switch ext {
	case ".pdf":
		text, err := extractPDF(path)
		if err != nil {
			return "", fmt.Errorf("error reading PDF: %w", err)
		}
		return text, nil
	case ".docx":
		text, err := extractDocx(path)
		if err != nil {
			return "", fmt.Errorf("error reading DOCX: %w", err)
		}
		return text, nil
	case ".txt":
		text, err := extractText(path)
		if err != nil {
			return "", fmt.Errorf("error reading TXT file: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

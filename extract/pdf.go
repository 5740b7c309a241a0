package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text from a PDF file page by page.
// Pages that fail to decode or carry no text are skipped; the remaining
// pages are joined with blank-line separators.
func extractPDF(path string) (text string, err error) {
	// The underlying parser can panic on malformed cross-reference tables;
	// convert that into an error so extraction stays a two-valued boundary.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n"), nil
}

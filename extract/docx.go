package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// document.xml carries one w:p element per paragraph; the text lives in
// w:t runs nested below it. Decoding just those two shapes is enough to
// recover the visible text.
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []string `xml:"t"`
}

// extractDocx extracts text from a DOCX file. Paragraphs that are blank
// after trimming are dropped; the rest are joined with blank-line
// separators.
func extractDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("missing word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var doc docxDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return "", err
	}

	var paragraphs []string
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Texts {
				sb.WriteString(t)
			}
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}

	return strings.Join(paragraphs, "\n\n"), nil
}

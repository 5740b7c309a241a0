package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractUnsupportedType(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "notes.xlsx", []byte("binary"))

	_, err := e.Extract(path)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractDispatchIgnoresExtensionCase(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "NOTES.TXT", []byte("uppercase extension"))

	text, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "uppercase extension", text)
}

func TestExtractTextUTF8(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "notes.txt", []byte("héllo wörld"))

	text, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", text)
}

func TestExtractTextLatin1Fallback(t *testing.T) {
	e := NewExtractor()
	// "café" encoded as Latin-1: 0xE9 is not valid UTF-8 on its own.
	path := writeFile(t, "legacy.txt", []byte{'c', 'a', 'f', 0xE9})

	text, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

func TestExtractDocx(t *testing.T) {
	e := NewExtractor()
	path := writeDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>   </w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
}

func TestExtractDocxMissingDocument(t *testing.T) {
	e := NewExtractor()
	path := filepath.Join(t.TempDir(), "broken.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, err = e.Extract(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractPDFMalformed(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "broken.pdf", []byte("not a pdf at all"))

	_, err := e.Extract(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")
}

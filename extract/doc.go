// Package extract converts stored document files into plain text.
//
// Supported formats:
//   - .pdf  — per-page text extraction, pages without text are skipped
//   - .docx — word/document.xml paragraphs from the ZIP archive
//   - .txt  — UTF-8, with a Latin-1 fallback for legacy uploads
//
// Extraction is a hard boundary: every failure comes back as an error value,
// never as a panic, so one bad file cannot take down a pipeline run that
// still has usable sources.
package extract

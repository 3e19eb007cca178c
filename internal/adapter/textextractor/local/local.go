// Package local extracts plain text from uploaded resumes in-process. PDF and
// DOCX are parsed with local libraries; anything else is treated as plain
// text. Unreadable documents degrade to empty text instead of failing, so a
// corrupt file scores zero rather than aborting a request or batch.
package local

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// Extractor implements domain.TextExtractor with no external services.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns normalized plain text for the document content. The error
// is always nil; extraction failures are logged and yield empty text.
func (e *Extractor) Extract(_ domain.Context, fileName string, data []byte) (string, error) {
	var raw string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		raw = extractPDF(fileName, data)
	case ".docx":
		raw = extractDocx(fileName, data)
	default:
		raw = textx.SanitizeText(string(data))
	}
	return textx.Normalize(raw), nil
}

func extractPDF(fileName string, data []byte) (out string) {
	// the pdf library panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("pdf extraction panic", slog.String("file", fileName), slog.Any("recover", rec))
			out = ""
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("pdf open failed", slog.String("file", fileName), slog.Any("error", err))
		return ""
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("pdf page extraction failed", slog.String("file", fileName), slog.Int("page", i), slog.Any("error", err))
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func extractDocx(fileName string, data []byte) string {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("docx open failed", slog.String("file", fileName), slog.Any("error", err))
		return ""
	}
	defer func() { _ = doc.Close() }()
	return doc.Editable().GetContent()
}

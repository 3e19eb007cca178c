// Package pdfreport renders batch analysis results into a PDF artifact.
package pdfreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// ShortlistThreshold is the ATS score at and above which a candidate is
// marked shortlisted in the report.
const ShortlistThreshold = 75

// Writer implements domain.ReportWriter with gofpdf.
type Writer struct{}

// New constructs a Writer.
func New() *Writer { return &Writer{} }

// Write renders one section per record (filename, candidate name, ATS score,
// domain match, shortlist verdict) and writes the PDF to outputPath, creating
// parent directories as needed. Returns the written path.
func (w *Writer) Write(records []domain.AnalysisRecord, outputPath string) (string, error) {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("op=pdfreport.Write: %w", err)
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "ATS Resume Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = "-"
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Resume: "+rec.Filename, "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, "Name: "+name, "", 1, "", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("ATS Score: %d%%", rec.ATSScore), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Domain Match: %d%%", rec.MatchPercent), "", 1, "", false, 0, "")

		if rec.ATSScore >= ShortlistThreshold {
			pdf.SetTextColor(0, 128, 0)
			pdf.CellFormat(0, 7, "Shortlisted", "", 1, "", false, 0, "")
		} else {
			pdf.SetTextColor(200, 0, 0)
			pdf.CellFormat(0, 7, "Not selected", "", 1, "", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("op=pdfreport.Write: %w", err)
	}
	return outputPath, nil
}

// Text renders the human-readable single-resume report used as a preview.
func Text(p domain.ParsedResume) string {
	name := p.Name
	if name == "" {
		name = "Candidate"
	}
	preview := p.Text
	if len(preview) > 1000 {
		preview = preview[:1000]
	}
	lines := []string{
		"Resume report for: " + name,
		"Emails: " + strings.Join(p.Emails, ", "),
		"Phones: " + strings.Join(p.Phones, ", "),
		fmt.Sprintf("ATS Score: %d%%", p.ATSScore),
		"",
		"Extracted text preview:",
		preview,
	}
	return strings.Join(lines, "\n")
}

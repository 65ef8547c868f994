// Package report renders answers as PDF artifacts. The layout reads from
// the structured result, never from composed markdown, so an export looks
// the same whether or not a model phrased the on-screen answer.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"uxguard/internal/compose"
	"uxguard/internal/knowledge"
	"uxguard/internal/regulatory"
)

const (
	docTitle   = "UX + AI Risk Guide"
	pageMargin = 20.0 // mm
	breakBand  = 30.0 // keep this much clearance above the bottom edge, mm
)

// ExportError reports a failed render. Export is isolated: the answer on
// screen is unaffected and the user can retry.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export: %v", e.Err) }

func (e *ExportError) Unwrap() error { return e.Err }

// WritePDF renders the answer's curated entries to w as an A4 document.
func WritePDF(w io.Writer, ans *compose.FormattedAnswer) error {
	if ans == nil || ans.Result == nil || len(ans.Result.Matches) == 0 {
		return &ExportError{Err: fmt.Errorf("nothing to export")}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, breakBand)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, tr(docTitle), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr("Query: "+ans.Query), "", "L", false)
	tier := regulatory.ClassifyQuery(ans.Query)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("EU AI Act: %s — %s", tier.Tag, tier.Note)), "", "L", false)
	pdf.MultiCell(0, 5, tr("Generated: "+time.Now().UTC().Format("2006-01-02 15:04 UTC")), "", "L", false)
	pdf.Ln(4)

	citation := 0
	for _, m := range ans.Result.Matches {
		r := m.Risk
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Risk: %s (Priority: %s; Phase: %s)", r.Title, r.Priority, r.Phase.Display())), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		if r.Justification != "" {
			pdf.MultiCell(0, 5, tr(r.Justification), "", "L", false)
		}
		writeItems(pdf, tr, "Mitigations (HCL):", r.Mitigations)
		writeItems(pdf, tr, "Evidence:", r.Evidence)
		if len(m.References) > 0 {
			pdf.MultiCell(0, 5, tr("References:"), "", "L", false)
			for _, ref := range m.References {
				citation++
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("  [%d] %s", citation, refLine(ref))), "", "L", false)
			}
		}
		if r.AIActNote != "" {
			pdf.MultiCell(0, 5, tr("EU AI Act note: "+r.AIActNote), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, tr(regulatory.Disclaimer), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

// SavePDF renders to a file, creating or truncating it.
func SavePDF(path string, ans *compose.FormattedAnswer) error {
	if ans == nil || ans.Result == nil || len(ans.Result.Matches) == 0 {
		return &ExportError{Err: fmt.Errorf("nothing to export")}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Err: err}
	}
	if err := WritePDF(f, ans); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

func writeItems(pdf *gofpdf.Fpdf, tr func(string) string, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	if len(items) > 5 {
		items = items[:5]
	}
	pdf.MultiCell(0, 5, tr(heading), "", "L", false)
	for _, item := range items {
		pdf.MultiCell(0, 5, tr("  - "+item), "", "L", false)
	}
}

// refLine formats one bibliography row.
func refLine(ref knowledge.ReferenceEntry) string {
	authors := strings.ReplaceAll(ref.Authors, "&", "and")
	year := "?"
	if ref.Year != 0 {
		year = strconv.Itoa(ref.Year)
	}
	line := fmt.Sprintf("%s (%s). %s", authors, year, ref.Title)
	if ref.Venue != "" {
		line += " — " + ref.Venue
	}
	if ref.DOI != "" {
		line += " — DOI: " + ref.DOI
	} else if ref.URL != "" {
		line += " — " + ref.URL
	}
	return line
}

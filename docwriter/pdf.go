package docwriter

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/dodd623/lucidscript/document"
)

// PDFWriter renders blocks as an A4 PDF. Body text uses a monospaced font so
// the pre-wrapped lines keep their column alignment; speaker headings are
// bold, matching the transcript's visual structure.
type PDFWriter struct{}

// NewPDFWriter creates a PDF writer.
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

func (*PDFWriter) Extension() string   { return "pdf" }
func (*PDFWriter) ContentType() string { return "application/pdf" }

const (
	pdfBodyFont    = "Courier"
	pdfBodySize    = 9.0
	pdfLineHeight  = 4.5
	pdfTitleSize   = 14.0
	pdfHeadingSize = 9.0
)

// Write renders the block sequence to w.
func (*PDFWriter) Write(w io.Writer, blocks []document.Block) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate so the en-dash in headings survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range blocks {
		switch b := block.(type) {
		case document.Header:
			pdf.SetFont("Helvetica", "B", pdfTitleSize)
			pdf.CellFormat(0, 8, tr(b.Title), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(112, 112, 112)
			pdf.CellFormat(0, 5, tr(b.Meta()), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(3)
		case document.SpeakerHeading:
			pdf.Ln(2)
			pdf.SetFont(pdfBodyFont, "B", pdfHeadingSize)
			pdf.CellFormat(0, pdfLineHeight, tr(b.String()), "", 1, "L", false, 0, "")
		case document.TextLine:
			pdf.SetFont(pdfBodyFont, "", pdfBodySize)
			pdf.CellFormat(0, pdfLineHeight, tr(b.Text), "", 1, "L", false, 0, "")
		case document.PageBreak:
			pdf.AddPage()
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("docwriter: render pdf: %w", err)
	}
	return nil
}

var _ Writer = (*PDFWriter)(nil)

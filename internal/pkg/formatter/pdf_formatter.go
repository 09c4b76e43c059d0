package formatter

import (
	"bytes"
	"os"

	"github.com/futig/product-search/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Runtime layout copies fonts next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source layout, when running from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

// column widths in mm, A4 portrait minus margins
var pdfColumnWidths = []float64{12, 70, 25, 83}

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

func (mf *PDFFormatter) Format(view *entity.SearchView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, tr(baseTitle))
	pdf.Ln(12)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, tr("Query: "+view.Query), "", "", false)
	pdf.MultiCell(0, lineHeight*1.5, tr(view.Message), "", "", false)
	pdf.Ln(4)

	if len(view.Cards) > 0 {
		pdf.SetFont(fontName, "B", 11)
		for i, h := range tableHeader {
			pdf.CellFormat(pdfColumnWidths[i], 8, tr(h), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(fontName, "", 11)
		for i, card := range view.Cards {
			for j, cell := range tableRow(i, card) {
				pdf.CellFormat(pdfColumnWidths[j], 7, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}

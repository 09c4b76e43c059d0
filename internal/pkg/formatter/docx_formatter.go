package formatter

import (
	"bytes"

	"github.com/futig/product-search/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(view *entity.SearchView) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle)

	queryRun := doc.AddParagraph().AddRun()
	queryRun.AddText("Query: ")
	queryRun.AddText(view.Query)

	doc.AddParagraph().AddRun().AddText(view.Message)

	if len(view.Cards) > 0 {
		table := doc.AddTable()
		table.Properties().SetWidthPercent(100)

		addDocxRow(table, tableHeader, true)
		for i, card := range view.Cards {
			addDocxRow(table, tableRow(i, card), false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDocxRow(table document.Table, cells []string, bold bool) {
	row := table.AddRow()
	for _, c := range cells {
		run := row.AddCell().AddParagraph().AddRun()
		if bold {
			run.Properties().SetBold(true)
		}
		run.AddText(c)
	}
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}

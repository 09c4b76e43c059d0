package formatter

import (
	"fmt"

	"github.com/futig/product-search/internal/entity"
)

const baseTitle = "Product search results"

type Formatter interface {
	Format(view *entity.SearchView) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// FileName is the suggested download name for an export of view.
func FileName(f Formatter) string {
	return "search-results" + f.FileExtension()
}

// tableHeader is shared by every tabular rendering of a view.
var tableHeader = []string{"#", "Product", "Score", "File"}

func tableRow(i int, card entity.ResultCard) []string {
	return []string{fmt.Sprint(i + 1), card.Title, card.Subtitle, card.Detail}
}

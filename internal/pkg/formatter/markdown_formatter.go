package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(view *entity.SearchView) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	fmt.Fprintf(&buf, "Query: **%s**\n\n", escapeMarkdown(view.Query))
	fmt.Fprintf(&buf, "%s\n", view.Message)

	if len(view.Cards) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("\n")
	writeMarkdownRow(&buf, tableHeader)
	buf.WriteString("|" + strings.Repeat(" --- |", len(tableHeader)) + "\n")
	for i, card := range view.Cards {
		writeMarkdownRow(&buf, tableRow(i, card))
	}

	return buf.Bytes(), nil
}

func writeMarkdownRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, c := range cells {
		buf.WriteString(" " + escapeMarkdown(c) + " |")
	}
	buf.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

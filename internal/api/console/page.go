package console

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/usecase/index"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// page is everything the console template renders. Sidebar inputs are
// echoed back so a submission does not clear them.
type page struct {
	Folder       string
	Specific     bool
	Query        string
	MaxFileCount int

	Notices []entity.Notice
	View    *entity.SearchView
	Reply   string
}

func (p *page) notify(n ...entity.Notice) {
	p.Notices = append(p.Notices, n...)
}

func (p *page) setReply(raw json.RawMessage) {
	p.Reply = index.FormatReply(raw)
}

func render(w http.ResponseWriter, status int, p *page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

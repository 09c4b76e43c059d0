package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/integration/catalog"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/futig/product-search/internal/usecase/search"
	"github.com/futig/product-search/internal/usecase/upload"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap/zaptest"
)

type backend interface {
	upload.Backend
	index.Backend
	search.Backend
}

type testFile struct {
	name, contentType, content string
}

func newTestRouter(t *testing.T, b backend) http.Handler {
	t.Helper()
	cfg := config.FileUploadConfig{MaxFileSize: 1 << 20, MaxFileCount: 3, MaxUploadSize: 1 << 22, Workers: 1}
	v := validator.NewFileValidator(cfg)
	log := zaptest.NewLogger(t)

	h := NewHandler(
		upload.NewUsecase(b, v, cfg.Workers, log),
		index.NewUsecase(b, log),
		search.NewUsecase(b, log),
		formatter.NewFactory(),
		v,
		cfg,
	)

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func multipartBody(t *testing.T, folder string, files ...testFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		mw.WriteField("product_folder", folder)
	}
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.name))
		hdr.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write([]byte(f.content))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestUploadIndexSearch(t *testing.T) {
	router := newTestRouter(t, catalog.NewMockConnector(zaptest.NewLogger(t)))

	body, ct := multipartBody(t, " modern_chairs ",
		testFile{"specs.txt", "text/plain", "Leather seat with walnut armrests"},
		testFile{`C:\photos\front.jpg`, "image/jpeg", "\xff\xd8"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := do(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body)
	}
	up := decode[entity.UploadResponse](t, rec)
	if up.ProductFolder != "modern_chairs" || up.Succeeded != 2 || up.Failed != 0 {
		t.Fatalf("upload = %+v", up)
	}
	if len(up.Notices) != 1 || up.Notices[0].Text != "Successfully uploaded 2 file(s)" {
		t.Fatalf("notices = %+v", up.Notices)
	}

	rec = do(t, router, httptest.NewRequest(http.MethodPost, "/api/update-content", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("update-content status = %d: %s", rec.Code, rec.Body)
	}
	idx := decode[entity.UpdateContentResponse](t, rec)
	if idx.Notice.Text != index.MsgUpdated || string(idx.BackendResponse) != `{"indexed_files":2,"message":"Content index updated"}` {
		t.Fatalf("update-content = %+v (%s)", idx, idx.BackendResponse)
	}

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/api/search?query=walnut", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d: %s", rec.Code, rec.Body)
	}
	res := decode[entity.SearchAPIResponse](t, rec)
	if res.SearchView == nil || len(res.Cards) != 1 {
		t.Fatalf("search = %s", rec.Body)
	}
	card := res.Cards[0]
	if card.Title != "Modern Chairs" || card.Subtitle != "1.00" || card.Detail != "specs.txt" {
		t.Errorf("card = %+v", card)
	}
	if res.Notice.Level != entity.NoticeSuccess || res.Notice.Text != "Found 1 matching products:" {
		t.Errorf("notice = %+v", res.Notice)
	}
}

func TestUpload_Refused(t *testing.T) {
	router := newTestRouter(t, catalog.NewMockConnector(zaptest.NewLogger(t)))

	cases := []struct {
		name   string
		folder string
		files  []testFile
		want   string
	}{
		{"no folder", "", []testFile{{"a.txt", "text/plain", "a"}}, "product_folder"},
		{"no files", "oak_tables", nil, "files"},
		{"too many files", "oak_tables", []testFile{
			{"a.txt", "text/plain", "a"}, {"b.txt", "text/plain", "b"},
			{"c.txt", "text/plain", "c"}, {"d.txt", "text/plain", "d"},
		}, "maximum 3 files"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.folder, tc.files...)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", ct)

			rec := do(t, router, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if e := decode[entity.ErrorResponse](t, rec); !strings.Contains(e.Message, tc.want) {
				t.Errorf("message = %q, want it to mention %q", e.Message, tc.want)
			}
		})
	}
}

func TestUpdateContent_ScopedRequest(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		got = buf.String()
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	router := newTestRouter(t, catalog.NewConnector(config.HTTPClientConfig{Url: srv.URL}, zaptest.NewLogger(t)))

	req := httptest.NewRequest(http.MethodPost, "/api/update-content", strings.NewReader(`{"product_folder":"oak_tables","specific":true}`))
	rec := do(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got != `{"product_folder":"oak_tables"}` {
		t.Errorf("backend body = %s", got)
	}
	if !strings.Contains(rec.Body.String(), `"backend_response":{"status":"queued"}`) {
		t.Errorf("reply not passed through: %s", rec.Body)
	}
}

func TestUpdateContent_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "indexer busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	router := newTestRouter(t, catalog.NewConnector(config.HTTPClientConfig{Url: srv.URL}, zaptest.NewLogger(t)))

	rec := do(t, router, httptest.NewRequest(http.MethodPost, "/api/update-content", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if e := decode[entity.ErrorResponse](t, rec); e.Message != "Failed to update content index: indexer busy\n" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	router := newTestRouter(t, catalog.NewMockConnector(zaptest.NewLogger(t)))

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/api/search?query=+++", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decode[entity.ErrorResponse](t, rec); e.Message != search.MsgEmptyQuery {
		t.Errorf("message = %q", e.Message)
	}
}

func TestSearch_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"OpenSearch cluster unavailable"}`))
	}))
	defer srv.Close()

	router := newTestRouter(t, catalog.NewConnector(config.HTTPClientConfig{Url: srv.URL}, zaptest.NewLogger(t)))

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/api/search?query=chair", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decode[entity.ErrorResponse](t, rec); e.Message != `Search failed: {"error":"OpenSearch cluster unavailable"}` {
		t.Errorf("message = %q", e.Message)
	}
}

func TestExportSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"product_folder":"oak_tables","file_name":"b.pdf","score":0.65}]}`))
	}))
	defer srv.Close()

	router := newTestRouter(t, catalog.NewConnector(config.HTTPClientConfig{Url: srv.URL}, zaptest.NewLogger(t)))

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/api/search/export?query=oak", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="search-results.md"` {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "| 1 | Oak Tables | 0.65 | b.pdf |") {
		t.Errorf("body = %s", rec.Body)
	}

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/api/search/export?query=oak&format=xlsx", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d", rec.Code)
	}
}

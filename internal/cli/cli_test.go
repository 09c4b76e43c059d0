package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/usecase/search"
	pkghttp "github.com/futig/product-search/pkg/http"
	"go.uber.org/zap/zaptest"
)

type fakeUpload struct {
	folder  string
	files   []entity.FileData
	outcome *entity.UploadOutcome
	err     error
}

func (f *fakeUpload) UploadBatch(ctx context.Context, folder string, files []entity.FileData) (*entity.UploadOutcome, error) {
	f.folder, f.files = folder, files
	return f.outcome, f.err
}

type fakeIndex struct {
	folder   string
	specific bool
	reply    json.RawMessage
	err      error
}

func (f *fakeIndex) Refresh(ctx context.Context, folder string, specific bool) (json.RawMessage, error) {
	f.folder, f.specific = folder, specific
	return f.reply, f.err
}

type fakeSearch struct {
	calls   int
	query   string
	results []entity.SearchResult
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, query string) (*entity.SearchView, error) {
	f.calls++
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return search.BuildView(query, f.results), nil
}

type harness struct {
	upload *fakeUpload
	index  *fakeIndex
	search *fakeSearch
	env    string
}

func newHarness() *harness {
	return &harness{upload: &fakeUpload{}, index: &fakeIndex{}, search: &fakeSearch{}}
}

func (h *harness) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	root := NewRootCommand(func(environment string) (*Workflows, error) {
		h.env = environment
		return &Workflows{
			Upload:    h.upload,
			Index:     h.index,
			Search:    h.search,
			Formatter: formatter.NewFactory(),
			Logger:    zaptest.NewLogger(t),
		}, nil
	})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	code := Execute(context.Background(), root, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "specs.txt")
	blob := filepath.Join(dir, "scan")
	os.WriteFile(txt, []byte("walnut"), 0o600)
	os.WriteFile(blob, []byte("%PDF-1.7\n"), 0o600)

	h := newHarness()
	h.upload.outcome = &entity.UploadOutcome{Succeeded: 2}

	out, _, code := h.run(t, "upload", "--env", "prod", "--folder", "modern_chairs", txt, blob)
	if code != 0 {
		t.Fatalf("exit code = %d, output %q", code, out)
	}
	if h.env != "prod" || h.upload.folder != "modern_chairs" {
		t.Fatalf("env = %q, folder = %q", h.env, h.upload.folder)
	}
	if len(h.upload.files) != 2 || h.upload.files[0].Filename != "specs.txt" || string(h.upload.files[0].Content) != "walnut" {
		t.Fatalf("files = %+v", h.upload.files)
	}
	if !strings.HasPrefix(h.upload.files[0].ContentType, "text/plain") {
		t.Errorf("txt content type = %q", h.upload.files[0].ContentType)
	}
	if h.upload.files[1].ContentType != "application/pdf" {
		t.Errorf("sniffed content type = %q", h.upload.files[1].ContentType)
	}
	if out != "[success] Successfully uploaded 2 file(s)\n" {
		t.Errorf("output = %q", out)
	}
}

func TestUpload_UnreadablePathStaysInBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	os.WriteFile(good, []byte("x"), 0o600)
	missing := filepath.Join(dir, "missing.txt")

	h := newHarness()
	h.upload.outcome = &entity.UploadOutcome{Succeeded: 1}

	h.run(t, "upload", "--folder", "f", missing, good)
	if len(h.upload.files) != 2 {
		t.Fatalf("files = %+v", h.upload.files)
	}
	if h.upload.files[0].Filename != "missing.txt" || !errors.Is(h.upload.files[0].ReadErr, os.ErrNotExist) {
		t.Errorf("missing file = %+v", h.upload.files[0])
	}
	if h.upload.files[1].ReadErr != nil || string(h.upload.files[1].Content) != "x" {
		t.Errorf("good file = %+v", h.upload.files[1])
	}
}

func TestUpload_PartialFailureExitsNonZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	os.WriteFile(path, []byte("x"), 0o600)

	h := newHarness()
	h.upload.outcome = &entity.UploadOutcome{
		Succeeded: 0,
		Failed:    1,
		Failures:  []entity.UploadFailure{{FileName: "a.txt", Message: "HTTP 403: denied"}},
	}

	out, _, code := h.run(t, "upload", "--folder", "f", path)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "[error] Error uploading a.txt: HTTP 403: denied") {
		t.Errorf("output = %q", out)
	}
}

func TestUpload_RequiresFolderFlag(t *testing.T) {
	h := newHarness()
	_, stderr, code := h.run(t, "upload", "a.txt")
	if code != 1 || !strings.Contains(stderr, "folder") {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
}

func TestReindex(t *testing.T) {
	h := newHarness()
	h.index.reply = json.RawMessage(`{"status":"ok"}`)

	out, _, code := h.run(t, "reindex", "--folder", "oak_tables", "--specific")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if h.index.folder != "oak_tables" || !h.index.specific {
		t.Fatalf("refresh args = %q %v", h.index.folder, h.index.specific)
	}
	want := "[success] Content index updated successfully!\n{\n  \"status\": \"ok\"\n}\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestReindex_EmptyReply(t *testing.T) {
	h := newHarness()

	out, _, code := h.run(t, "reindex")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "[success] Content index updated successfully!\n(empty reply)\n" {
		t.Errorf("output = %q", out)
	}
}

func TestReindex_BackendFailure(t *testing.T) {
	h := newHarness()
	h.index.err = &pkghttp.HTTPError{StatusCode: 500, Message: "indexer down"}

	out, _, code := h.run(t, "reindex")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "[error] Failed to update content index: indexer down\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_Grid(t *testing.T) {
	h := newHarness()
	h.search.results = []entity.SearchResult{
		{ProductFolder: "modern_chairs", FileName: "a.jpg", Score: 0.87},
		{ProductFolder: "oak_tables", FileName: "b.pdf", Score: 0.654},
	}

	out, _, code := h.run(t, "search", "modern", "chair")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if h.search.query != "modern chair" {
		t.Errorf("query = %q", h.search.query)
	}
	for _, want := range []string{
		"[success] Found 2 matching products:",
		"Modern Chairs   Oak Tables",
		"Score: 0.87     Score: 0.65",
		"File: a.jpg     File: b.pdf",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearch_EmptyQueryWarns(t *testing.T) {
	h := newHarness()

	out, _, code := h.run(t, "search", "  ")
	if code != 1 || h.search.calls != 0 {
		t.Fatalf("code = %d, calls = %d", code, h.search.calls)
	}
	if out != "[warning] Please enter a search query\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_Failure(t *testing.T) {
	h := newHarness()
	h.search.err = errors.New("dial tcp: connection refused")

	out, _, code := h.run(t, "search", "chair")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "[error] Error during search: dial tcp: connection refused\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_Export(t *testing.T) {
	h := newHarness()
	h.search.results = []entity.SearchResult{{ProductFolder: "oak_tables", FileName: "b.pdf", Score: 0.5}}
	path := filepath.Join(t.TempDir(), "out.md")

	out, _, code := h.run(t, "search", "oak", "--format", "md", "--out", path)
	if code != 0 {
		t.Fatalf("exit code = %d, output %q", code, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "| 1 | Oak Tables | 0.50 | b.pdf |") {
		t.Errorf("export = %s", data)
	}
	if !strings.Contains(out, "Exported results to "+path) {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_ExportUnknownFormat(t *testing.T) {
	h := newHarness()
	h.search.results = []entity.SearchResult{{ProductFolder: "f", FileName: "n", Score: 1}}

	_, stderr, code := h.run(t, "search", "x", "--format", "xlsx")
	if code != 1 || !strings.Contains(stderr, entity.ErrInvalidFormat.Error()) {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
	pkghttp "github.com/futig/product-search/pkg/http"
	"go.uber.org/zap/zaptest"
)

func newTestConnector(t *testing.T, baseURL string) *Connector {
	t.Helper()
	return NewConnector(config.HTTPClientConfig{Url: baseURL}, zaptest.NewLogger(t))
}

func TestConnector_RequestUploadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/prod/upload-url" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		want := map[string]string{"product_folder": "oak_tables", "file_name": "a.pdf", "content_type": "application/pdf"}
		for k, v := range want {
			if body[k] != v {
				t.Errorf("body[%s] = %q, want %q", k, body[k], v)
			}
		}
		if len(body) != len(want) {
			t.Errorf("unexpected body fields: %v", body)
		}
		w.Write([]byte(`{"upload_url":"https://bucket.example.com/oak_tables/a.pdf?sig=1"}`))
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL+"/prod")
	cred, err := c.RequestUploadURL(context.Background(), &entity.UploadTarget{
		ProductFolder: "oak_tables",
		FileName:      "a.pdf",
		ContentType:   "application/pdf",
		Content:       []byte("not sent"),
	})
	if err != nil {
		t.Fatalf("RequestUploadURL: %v", err)
	}
	if cred.UploadURL != "https://bucket.example.com/oak_tables/a.pdf?sig=1" {
		t.Fatalf("upload url = %q", cred.UploadURL)
	}
}

func TestConnector_RequestUploadURL_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestConnector(t, srv.URL).RequestUploadURL(context.Background(), &entity.UploadTarget{ProductFolder: "f", FileName: "n"})
	if !errors.Is(err, entity.ErrEmptyUploadURL) {
		t.Fatalf("expected ErrEmptyUploadURL, got %v", err)
	}
}

func TestConnector_PutObjectStatuses(t *testing.T) {
	cases := []struct {
		status int
		ok     bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusCreated, false},
		{http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("method = %s", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "text/csv" {
					t.Errorf("content type = %q", ct)
				}
				data, _ := io.ReadAll(r.Body)
				if string(data) != "a,b\n" {
					t.Errorf("body = %q", data)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := newTestConnector(t, "http://api.invalid").PutObject(context.Background(), srv.URL+"/obj?sig=x", "text/csv", []byte("a,b\n"))
			if tc.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.ok {
				var httpErr *pkghttp.HTTPError
				if !errors.Is(err, entity.ErrUnexpectedStatus) || !errors.As(err, &httpErr) || httpErr.StatusCode != tc.status {
					t.Fatalf("expected unexpected-status error with %d, got %v", tc.status, err)
				}
			}
		})
	}
}

func TestConnector_UpdateContent(t *testing.T) {
	const reply = `{"job":{"id":"42","state":"queued"}}`
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Write([]byte(reply))
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL)

	raw, err := c.UpdateContent(context.Background(), entity.IndexUpdateRequest{ProductFolder: "oak_tables"})
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if gotBody != `{"product_folder":"oak_tables"}` {
		t.Errorf("body = %s", gotBody)
	}
	if string(raw) != reply {
		t.Errorf("reply = %s", raw)
	}

	if _, err := c.UpdateContent(context.Background(), entity.IndexUpdateRequest{}); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if gotBody != `{}` {
		t.Errorf("global body = %s", gotBody)
	}
}

func TestConnector_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.URL.Query().Get("query") != "modern chair" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write([]byte(`{"results":[{"product_folder":"modern_chairs","file_name":"a.jpg","score":0.87},{"product_folder":"oak_tables","file_name":"b.pdf","score":0.65}]}`))
	}))
	defer srv.Close()

	results, err := newTestConnector(t, srv.URL).Search(context.Background(), "modern chair")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 || results[0].FileName != "a.jpg" || results[1].Score != 0.65 {
		t.Fatalf("results = %+v", results)
	}
}

func TestConnector_SearchFailureKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestConnector(t, srv.URL).Search(context.Background(), "x")
	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Message != "boom\n" {
		t.Fatalf("expected raw body error, got %v", err)
	}
}

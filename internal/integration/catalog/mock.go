package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/futig/product-search/internal/entity"
	pkghttp "github.com/futig/product-search/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	mockUploadScheme  = "mock"
	mockUploadHost    = "uploads"
	mockCredentialTTL = 15 * time.Minute
)

type pendingUpload struct {
	target entity.UploadTarget
}

type storedObject struct {
	folder      string
	fileName    string
	contentType string
	content     []byte
}

type indexEntry struct {
	folder   string
	fileName string
	terms    map[string]struct{}
}

// MockConnector is an in-memory stand-in for the search backend. Upload
// credentials expire and are single-use, objects live until the process
// exits, and search scores by query-term overlap.
type MockConnector struct {
	credentials *cache.Cache
	objects     *cache.Cache
	index       *cache.Cache
	mu          sync.Mutex
	logger      *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		credentials: cache.New(mockCredentialTTL, 2*mockCredentialTTL),
		objects:     cache.New(cache.NoExpiration, 0),
		index:       cache.New(cache.NoExpiration, 0),
		logger:      logger,
	}
}

// RequestUploadURL - мок выдачи presigned URL
func (m *MockConnector) RequestUploadURL(ctx context.Context, target *entity.UploadTarget) (*entity.UploadCredential, error) {
	if target.ProductFolder == "" || target.FileName == "" {
		return nil, &pkghttp.HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    `{"error":"product_folder and file_name are required"}`,
		}
	}

	token := uuid.NewString()
	m.credentials.SetDefault(token, &pendingUpload{target: *target})

	ctxzap.Info(ctx, "[MOCK] upload url issued",
		zap.String("product_folder", target.ProductFolder),
		zap.String("file_name", target.FileName),
	)

	u := url.URL{Scheme: mockUploadScheme, Host: mockUploadHost, Path: "/" + token}
	return &entity.UploadCredential{UploadURL: u.String()}, nil
}

// PutObject - мок загрузки по presigned URL
func (m *MockConnector) PutObject(ctx context.Context, uploadURL, contentType string, content []byte) error {
	u, err := url.Parse(uploadURL)
	if err != nil || u.Scheme != mockUploadScheme || u.Host != mockUploadHost {
		return &pkghttp.NetworkError{Err: fmt.Errorf("unsupported upload url %q", uploadURL)}
	}
	token := strings.TrimPrefix(u.Path, "/")

	m.mu.Lock()
	value, ok := m.credentials.Get(token)
	if ok {
		m.credentials.Delete(token)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %w", entity.ErrUnexpectedStatus, &pkghttp.HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "Request has expired or was already used",
		})
	}

	pending := value.(*pendingUpload)
	if pending.target.ContentType != contentType {
		return fmt.Errorf("%w: %w", entity.ErrUnexpectedStatus, &pkghttp.HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "SignatureDoesNotMatch",
		})
	}

	obj := &storedObject{
		folder:      pending.target.ProductFolder,
		fileName:    pending.target.FileName,
		contentType: contentType,
		content:     slices.Clone(content),
	}
	m.objects.Set(objectKey(obj.folder, obj.fileName), obj, cache.NoExpiration)

	ctxzap.Info(ctx, "[MOCK] object stored",
		zap.String("product_folder", obj.folder),
		zap.String("file_name", obj.fileName),
		zap.Int("size", len(content)),
	)

	return nil
}

// UpdateContent - мок переиндексации
func (m *MockConnector) UpdateContent(ctx context.Context, req entity.IndexUpdateRequest) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, item := range m.index.Items() {
		entry := item.Object.(*indexEntry)
		if !req.Scoped() || entry.folder == req.ProductFolder {
			m.index.Delete(key)
		}
	}

	indexed := 0
	for key, item := range m.objects.Items() {
		obj := item.Object.(*storedObject)
		if req.Scoped() && obj.folder != req.ProductFolder {
			continue
		}
		m.index.Set(key, &indexEntry{
			folder:   obj.folder,
			fileName: obj.fileName,
			terms:    objectTerms(obj),
		}, cache.NoExpiration)
		indexed++
	}

	ctxzap.Info(ctx, "[MOCK] content index rebuilt",
		zap.String("product_folder", req.ProductFolder),
		zap.Int("indexed_files", indexed),
	)

	reply := map[string]any{
		"message":       "Content index updated",
		"indexed_files": indexed,
	}
	if req.Scoped() {
		reply["product_folder"] = req.ProductFolder
	}

	return json.Marshal(reply)
}

// Search - мок поиска по пересечению терминов
func (m *MockConnector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 {
		return []entity.SearchResult{}, nil
	}

	m.mu.Lock()
	items := m.index.Items()
	m.mu.Unlock()

	results := make([]entity.SearchResult, 0)
	for _, item := range items {
		entry := item.Object.(*indexEntry)

		matched := 0
		for _, term := range queryTerms {
			if _, ok := entry.terms[term]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		results = append(results, entity.SearchResult{
			ProductFolder: entry.folder,
			FileName:      entry.fileName,
			Score:         float64(matched) / float64(len(queryTerms)),
		})
	}

	slices.SortStableFunc(results, func(a, b entity.SearchResult) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return strings.Compare(objectKey(a.ProductFolder, a.FileName), objectKey(b.ProductFolder, b.FileName))
	})

	ctxzap.Debug(ctx, "[MOCK] search served",
		zap.Int("query_terms", len(queryTerms)),
		zap.Int("count", len(results)),
	)

	return results, nil
}

func objectKey(folder, fileName string) string {
	return folder + "/" + fileName
}

func objectTerms(obj *storedObject) map[string]struct{} {
	terms := make(map[string]struct{})
	add := func(s string) {
		for _, t := range tokenize(s) {
			terms[t] = struct{}{}
		}
	}

	add(obj.folder)
	add(obj.fileName)
	if isTextual(obj.contentType) {
		add(string(obj.content))
	}

	return terms
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "csv") ||
		strings.Contains(ct, "json")
}

// tokenize lowercases s and splits it on anything that is not a letter or digit.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	terms := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

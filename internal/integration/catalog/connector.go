package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/integration/common"
	pkghttp "github.com/futig/product-search/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	uploadURLEndpoint     = "/upload-url"
	updateContentEndpoint = "/update-content"
	searchEndpoint        = "/search"
)

// Connector talks to the product search backend.
type Connector struct {
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewAPIConnector(cfg, logger),
		logger:    logger,
	}
}

// RequestUploadURL asks for a presigned write location for one file.
// POST {base}/upload-url {product_folder, file_name, content_type}
func (c *Connector) RequestUploadURL(ctx context.Context, target *entity.UploadTarget) (*entity.UploadCredential, error) {
	ctxzap.Debug(ctx, "requesting upload url",
		zap.String("product_folder", target.ProductFolder),
		zap.String("file_name", target.FileName),
	)

	var cred entity.UploadCredential
	if err := c.connector.DoRequest(ctx, http.MethodPost, uploadURLEndpoint, target, &cred); err != nil {
		return nil, err
	}

	if cred.UploadURL == "" {
		return nil, entity.ErrEmptyUploadURL
	}

	return &cred, nil
}

// PutObject transfers the file bytes to a presigned location.
// Only 200 and 204 are accepted; storage services answer one of the two.
func (c *Connector) PutObject(ctx context.Context, uploadURL, contentType string, content []byte) error {
	resp, err := c.connector.DoRaw(ctx, http.MethodPut, "", content,
		pkghttp.WithURL(uploadURL),
		pkghttp.WithHeader("Content-Type", contentType),
	)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return fmt.Errorf("%w: %w", entity.ErrUnexpectedStatus, &pkghttp.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    string(resp.Body),
		})
	}
}

// UpdateContent triggers a reindex and returns the backend reply untouched.
// POST {base}/update-content {} | {product_folder}
func (c *Connector) UpdateContent(ctx context.Context, req entity.IndexUpdateRequest) (json.RawMessage, error) {
	ctxzap.Info(ctx, "requesting content index update", zap.String("product_folder", req.ProductFolder))

	var raw json.RawMessage
	if err := c.connector.DoRequest(ctx, http.MethodPost, updateContentEndpoint, req, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// Search runs a free-text query.
// GET {base}/search?query=<q>
func (c *Connector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	var resp entity.SearchResponse
	if err := c.connector.DoRequest(ctx, http.MethodGet, searchEndpoint, nil, &resp, pkghttp.WithQuery("query", query)); err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "search results received", zap.Int("count", len(resp.Results)))

	return resp.Results, nil
}

package telegramfile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/futig/product-search/internal/entity"
	pkghttp "github.com/futig/product-search/pkg/http"
	"go.uber.org/zap"
)

const downloadTimeout = 2 * time.Minute

// Connector downloads files the Telegram bot API hosts for the bot. File
// URLs embed the bot token, so requests are not logged and transport
// errors are stripped of the URL.
type Connector struct {
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(logger *zap.Logger, opts ...pkghttp.HttpOpts) *Connector {
	opts = append([]pkghttp.HttpOpts{pkghttp.WithRequestTimeout(downloadTimeout)}, opts...)
	return &Connector{
		connector: pkghttp.NewConnector(&pkghttp.ConnectorConfig{Logger: logger}, opts...),
		logger:    logger,
	}
}

// Download fetches fileURL, refusing bodies larger than maxSize.
func (c *Connector) Download(ctx context.Context, fileURL string, maxSize int64) ([]byte, error) {
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme != "https" {
		return nil, fmt.Errorf("%w: file url must be https", entity.ErrInvalidParameter)
	}

	resp, err := c.connector.DoRaw(ctx, http.MethodGet, "", nil, pkghttp.WithURL(fileURL))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("download file: %w", urlErr.Err)
		}
		return nil, fmt.Errorf("download file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &pkghttp.HTTPError{StatusCode: resp.StatusCode, Message: string(resp.Body)}
	}

	if int64(len(resp.Body)) > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", entity.ErrFileTooLarge, len(resp.Body), maxSize)
	}

	c.logger.Debug("telegram file downloaded", zap.Int("size", len(resp.Body)))

	return resp.Body, nil
}

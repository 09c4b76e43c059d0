package common

import (
	"net/url"

	"github.com/futig/product-search/internal/config"
	pkghttp "github.com/futig/product-search/pkg/http"
	"go.uber.org/zap"
)

// NewAPIConnector builds the connector for the search backend API. The
// bearer token is only sent to the API host, so presigned storage URLs
// reached through the same connector never see it.
func NewAPIConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkghttp.Connector {
	return pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{Logger: logger, BaseURL: cfg.Url},
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(cfg.Token, hostOf(cfg.Url)),
	)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

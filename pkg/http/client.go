package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps a round tripper, outermost last.
type TransportFunc func(http.RoundTripper) http.RoundTripper

type HttpOpts func(*clientConfig)

// clientConfig leaves request and response-header timeouts unset by
// default: a connector only gives up on a slow peer when asked to.
type clientConfig struct {
	dialTimeout           time.Duration
	keepAlive             time.Duration
	requestTimeout        time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	insecureSkipVerify    bool
	wrappers              []TransportFunc
}

func WithConnClientTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) { c.dialTimeout = timeout }
}

// WithRequestTimeout caps a whole exchange. Zero waits indefinitely.
func WithRequestTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) { c.requestTimeout = timeout }
}

func WithClientKeepAlive(keepAlive time.Duration) HttpOpts {
	return func(c *clientConfig) { c.keepAlive = keepAlive }
}

func WithResponseHeaderTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) { c.responseHeaderTimeout = timeout }
}

func WithIdleConnTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) { c.idleConnTimeout = timeout }
}

// WithInsecureSkipVerify disables TLS verification. Test servers only.
func WithInsecureSkipVerify(skip bool) HttpOpts {
	return func(c *clientConfig) { c.insecureSkipVerify = skip }
}

func WithTransport(wrap TransportFunc) HttpOpts {
	return func(c *clientConfig) { c.wrappers = append(c.wrappers, wrap) }
}

func newClient(opts ...HttpOpts) *http.Client {
	cfg := &clientConfig{
		dialTimeout:     30 * time.Second,
		keepAlive:       90 * time.Second,
		idleConnTimeout: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.dialTimeout,
		KeepAlive: cfg.keepAlive,
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}
	if cfg.insecureSkipVerify {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	var rt http.RoundTripper = base
	for _, wrap := range cfg.wrappers {
		rt = wrap(rt)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: rt,
	}
}

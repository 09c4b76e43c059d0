package http

import "net/http"

// authTransport attaches the bearer token only to requests addressed to the
// API host. Presigned upload URLs point elsewhere and carry their own
// authorization in the query string, so they must go out untouched.
type authTransport struct {
	token     string
	host      string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" || (t.host != "" && req.URL.Host != t.host) {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", "Bearer "+t.token)

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken adds a bearer token to requests for host. An empty host
// applies the token to every request.
func WithAuthToken(token, host string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			token:     token,
			host:      host,
			transport: rt,
		}
	})
}

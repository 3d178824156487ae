package client

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// ClickHouse authentication headers.
const (
	UserHeader = "X-ClickHouse-User"
	KeyHeader  = "X-ClickHouse-Key"
)

// headerTransport sets fixed headers on every request.
type headerTransport struct {
	next   http.RoundTripper
	header http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	for name, values := range t.header {
		req.Header[name] = values
	}
	return t.next.RoundTrip(req)
}

// newTransport layers the credential headers over a transport that
// negotiates and transparently decodes compressed responses.
func newTransport(parent http.RoundTripper, cfg Config) http.RoundTripper {
	if parent == nil {
		parent = http.DefaultTransport
	}
	header := http.Header{}
	header.Set(UserHeader, cfg.Username)
	header.Set(KeyHeader, cfg.Password)
	return &headerTransport{
		next:   gzhttp.Transport(parent),
		header: header,
	}
}

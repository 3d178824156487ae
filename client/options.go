package client

import (
	"net/http"

	"github.com/rs/zerolog"
)

type options struct {
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets the HTTP client used for requests. Its transport is
// wrapped, not replaced, and the client itself is copied.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records request outcomes and durations into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

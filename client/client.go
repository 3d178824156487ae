// Package client runs SQL against the ClickHouse HTTP interface and
// decodes the JSON result rows into Go values.
//
// A Client is immutable after construction and safe for concurrent use.
// Every call is a single POST; there are no retries.
//
//	c, err := client.FromEnv()
//	if err != nil {
//		return err
//	}
//	users, err := client.FetchMany[User](ctx, c, `SELECT "name" FROM "users"`)
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// FormatSuffix is appended to every query so rows come back as JSON.
const FormatSuffix = " FORMAT JSON"

// Client sends queries to one ClickHouse database.
type Client struct {
	httpClient *http.Client
	metrics    *Metrics
	endpoint   string
	logger     zerolog.Logger
}

// New creates a client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	hc.Transport = newTransport(hc.Transport, cfg)

	return &Client{
		httpClient: hc,
		metrics:    o.metrics,
		endpoint:   Endpoint(cfg),
		logger:     o.logger,
	}, nil
}

// FromEnv loads the configuration from the environment and creates a client.
func FromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Endpoint returns the URL every query is posted to.
func Endpoint(cfg Config) string {
	return strings.TrimSuffix(cfg.URL, "/") +
		"/?database=" + url.QueryEscape(cfg.Database) +
		"&enable_http_compression=1"
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// envelope is the ClickHouse JSON output format. Only data is read.
type envelope[R any] struct {
	Data []R `json:"data"`
}

// FetchMany runs sql and decodes every result row into R. A response
// without a data field yields an empty slice.
func FetchMany[R any](ctx context.Context, c *Client, sql string) ([]R, error) {
	start := time.Now()
	query := sql + FormatSuffix

	body, err := c.post(ctx, query)
	if err != nil {
		c.metrics.observe(outcomeOf(err), time.Since(start))
		return nil, err
	}

	var env envelope[R]
	if err := json.Unmarshal(body, &env); err != nil {
		c.metrics.observe(OutcomeDeserialize, time.Since(start))
		c.logger.Debug().Err(err).Str("query", query).Msg("failed to decode response")
		return nil, &DeserializeError{
			Err:   err,
			Type:  typeName[R](),
			Body:  string(body),
			Query: query,
		}
	}

	c.metrics.observe(OutcomeOK, time.Since(start))
	if env.Data == nil {
		return []R{}, nil
	}
	return env.Data, nil
}

// FetchOne runs sql and returns the first row. ok is false when the
// result is empty.
func FetchOne[R any](ctx context.Context, c *Client, sql string) (row R, ok bool, err error) {
	rows, err := FetchMany[R](ctx, c, sql)
	if err != nil || len(rows) == 0 {
		return row, false, err
	}
	return rows[0], true, nil
}

// post sends query and returns the body of a successful response.
func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, &TransportError{Query: query, Err: err}
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	c.logger.Debug().Str("query", query).Msg("sending query")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Query: query, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug().Err(closeErr).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Query: query, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Int("status", resp.StatusCode).Str("query", query).Msg("query failed")
		return nil, &DatabaseError{
			Message:    string(body),
			Query:      query,
			StatusCode: resp.StatusCode,
		}
	}
	return body, nil
}

func outcomeOf(err error) string {
	switch err.(type) {
	case *TransportError:
		return OutcomeTransport
	case *DatabaseError:
		return OutcomeDatabase
	default:
		return OutcomeCanceled
	}
}

func typeName[R any]() string {
	return reflect.TypeOf((*R)(nil)).Elem().String()
}

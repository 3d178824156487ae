// Package clienttest provides an in-process ClickHouse HTTP endpoint for
// testing code built on the client package.
package clienttest

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/zoobzio/chql/client"
)

// MockQuery is the canned response for one SQL text. The SQL is matched
// without the trailing format directive.
type MockQuery struct {
	SQL string
	// Rows are encoded as the data field of the JSON output format.
	Rows []map[string]any
	// Body, when set, is written verbatim instead of Rows.
	Body string
	// StatusCode, when not 2xx, turns the response into a database error
	// carrying Body as the message.
	StatusCode int
	Latency    time.Duration
	// Gzip compresses the response when the client accepts it.
	Gzip bool
}

// Request is what the server observed for one call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// MockServer simulates the ClickHouse HTTP interface.
type MockServer struct {
	server *httptest.Server

	mu       sync.RWMutex
	queries  map[string]*MockQuery
	requests []Request
}

// NewMockServer starts a mock server. Close it when done.
func NewMockServer() *MockServer {
	m := &MockServer{queries: make(map[string]*MockQuery)}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the server base URL.
func (m *MockServer) URL() string {
	return m.server.URL
}

// Close shuts the server down.
func (m *MockServer) Close() {
	m.server.Close()
}

// Config returns a client configuration pointing at the server.
func (m *MockServer) Config() client.Config {
	return client.Config{
		Username: "default",
		Password: "secret",
		Database: "analytics",
		URL:      m.URL(),
	}
}

// AddQuery registers a canned response.
func (m *MockServer) AddQuery(q *MockQuery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries[q.SQL] = q
}

// Requests returns every request received so far.
func (m *MockServer) Requests() []Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request.
func (m *MockServer) LastRequest() (Request, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}

func (m *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requests = append(m.requests, Request{
		Method: r.Method,
		URL:    r.URL.String(),
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	q, ok := m.queries[strings.TrimSuffix(string(body), client.FormatSuffix)]
	m.mu.Unlock()

	if r.Method != http.MethodPost {
		http.Error(w, "Code: 62. DB::Exception: only POST is supported", http.StatusMethodNotAllowed)
		return
	}
	if !ok {
		http.Error(w, fmt.Sprintf("Code: 62. DB::Exception: Syntax error: unknown query %q", string(body)), http.StatusBadRequest)
		return
	}

	if q.Latency > 0 {
		select {
		case <-time.After(q.Latency):
		case <-r.Context().Done():
			return
		}
	}

	payload := []byte(q.Body)
	if q.Body == "" && (q.StatusCode == 0 || q.StatusCode/100 == 2) {
		payload, err = encodeRows(q.Rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	status := q.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	var out io.Writer = w
	if q.Gzip && strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		out = gz
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, _ = out.Write(payload)
}

// encodeRows renders rows in the shape of the JSON output format.
func encodeRows(rows []map[string]any) ([]byte, error) {
	if rows == nil {
		rows = []map[string]any{}
	}
	return json.Marshal(map[string]any{
		"meta": []any{},
		"data": rows,
		"rows": len(rows),
		"statistics": map[string]any{
			"elapsed":    0.000_1,
			"rows_read":  len(rows),
			"bytes_read": 0,
		},
	})
}

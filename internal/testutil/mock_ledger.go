// Package testutil provides testing utilities for the ledger client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockLedger is a configurable mock ledger server for testing. Each
// endpoint path holds a FIFO queue of scripted responses; request bodies
// are captured per path so tests can assert on serialized queries.
type MockLedger struct {
	server   *httptest.Server
	mu       sync.Mutex
	queues   map[string][]mockResponse
	handlers map[string]http.HandlerFunc
	requests map[string][]json.RawMessage

	requestCount int
}

type mockResponse struct {
	statusCode int
	body       string
}

// NewMockLedger creates a new mock ledger server.
func NewMockLedger() *MockLedger {
	mock := &MockLedger{
		queues:   make(map[string][]mockResponse),
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string][]json.RawMessage),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		var body json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			body = nil
		}

		mock.mu.Lock()
		mock.requestCount++
		mock.requests[path] = append(mock.requests[path], body)

		if handler, ok := mock.handlers[path]; ok {
			mock.mu.Unlock()
			handler(w, r)
			return
		}

		queue := mock.queues[path]
		if len(queue) == 0 {
			mock.mu.Unlock()
			writeJSON(w, http.StatusNotFound, `{"code": "SEQ008", "message": "no such endpoint"}`)
			return
		}
		resp := queue[0]
		mock.queues[path] = queue[1:]
		mock.mu.Unlock()

		writeJSON(w, resp.statusCode, resp.body)
	}))

	return mock
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != "" {
		w.Write([]byte(body))
	}
}

// URL returns the mock server URL.
func (m *MockLedger) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockLedger) Close() {
	m.server.Close()
}

// QueueResponse appends a raw response to the path's script.
func (m *MockLedger) QueueResponse(path string, statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues["/"+path] = append(m.queues["/"+path], mockResponse{statusCode: statusCode, body: body})
}

// QueuePage appends one page response built from item JSON fragments.
func (m *MockLedger) QueuePage(path string, itemsJSON []string, cursor string, lastPage bool) {
	items := "[]"
	if len(itemsJSON) > 0 {
		items = "["
		for i, it := range itemsJSON {
			if i > 0 {
				items += ","
			}
			items += it
		}
		items += "]"
	}
	body := fmt.Sprintf(`{"items": %s, "cursor": %q, "last_page": %t}`, items, cursor, lastPage)
	m.QueueResponse(path, http.StatusOK, body)
}

// QueueError appends a structured ledger error response.
func (m *MockLedger) QueueError(path string, statusCode int, code, message string) {
	body := fmt.Sprintf(`{"code": %q, "message": %q}`, code, message)
	m.QueueResponse(path, statusCode, body)
}

// SetHandler installs a custom handler for a path, bypassing the queue.
func (m *MockLedger) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers["/"+path] = handler
}

// Requests returns the captured request bodies for a path, in order.
func (m *MockLedger) Requests(path string) []json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]json.RawMessage(nil), m.requests["/"+path]...)
}

// RequestFields decodes the n-th captured request body for a path into
// its top-level JSON fields. It returns nil if the request does not
// exist or its body is not a JSON object.
func (m *MockLedger) RequestFields(path string, n int) map[string]json.RawMessage {
	reqs := m.Requests(path)
	if n >= len(reqs) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(reqs[n], &fields); err != nil {
		return nil
	}
	return fields
}

// RequestCount returns the total number of requests served.
func (m *MockLedger) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// Package testutil provides testing utilities for the Polly API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock Polly endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockPolly is a configurable mock Polly API server for testing.
type MockPolly struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
}

// NewMockPolly creates a new mock Polly server.
func NewMockPolly() *MockPolly {
	mock := &MockPolly{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not Found"}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockPolly) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockPolly) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockPolly) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockPolly) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// SetHandler sets a custom handler for a specific path.
func (m *MockPolly) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockPolly) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// NewJSONResponse creates a standard 200 OK response with a JSON body.
func NewJSONResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewDetailResponse creates a Polly-style error response with a detail body.
func NewDetailResponse(statusCode int, detail string) MockResponse {
	body, _ := json.Marshal(map[string]string{"detail": detail})
	return MockResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewPollDataset builds n sequential polls for paging tests. Poll IDs start
// at 1 and each poll carries two options.
func NewPollDataset(n int) []map[string]any {
	dataset := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		id := i + 1
		dataset[i] = map[string]any{
			"id":         id,
			"question":   fmt.Sprintf("Question %d?", id),
			"created_at": "2025-01-01T00:00:00Z",
			"owner_id":   1,
			"options": []map[string]any{
				{"id": id*10 + 1, "text": "Yes"},
				{"id": id*10 + 2, "text": "No"},
			},
		}
	}
	return dataset
}

// PollsHandler serves dataset pages honoring the skip and limit query
// parameters, the way the real /polls endpoint slices its collection.
func PollsHandler(dataset []map[string]any) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if skip < 0 {
			skip = 0
		}
		if skip > len(dataset) {
			skip = len(dataset)
		}

		end := skip + limit
		if end > len(dataset) {
			end = len(dataset)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dataset[skip:end])
	}
}

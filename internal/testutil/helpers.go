package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

// Endpoint is a fake translation endpoint speaking the backend JSON protocol
type Endpoint struct {
	URL string

	mu     sync.Mutex
	texts  []string
	status int
	body   string
}

// NewTranslationEndpoint starts an endpoint answering every request with
// status and body. It is closed when the test ends.
func NewTranslationEndpoint(t *testing.T, status int, body string) *Endpoint {
	t.Helper()

	e := &Endpoint{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(e.serveHTTP))
	t.Cleanup(srv.Close)
	e.URL = srv.URL
	return e
}

// NewTranslatingEndpoint starts an endpoint that answers successfully with
// translations[text]
func NewTranslatingEndpoint(t *testing.T, translations map[string]string) *Endpoint {
	t.Helper()

	e := &Endpoint{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := e.record(r)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"translatedText": translations[text]})
	}))
	t.Cleanup(srv.Close)
	e.URL = srv.URL
	return e
}

func (e *Endpoint) serveHTTP(w http.ResponseWriter, r *http.Request) {
	e.record(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.status)
	io.WriteString(w, e.body)
}

func (e *Endpoint) record(r *http.Request) string {
	var req struct {
		Text string `json:"text"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.texts = append(e.texts, req.Text)
	return req.Text
}

// Texts returns the text of every request received so far
func (e *Endpoint) Texts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.texts...)
}

// NewTestLogger returns a debug level logger writing into the returned buffer
func NewTestLogger(t *testing.T) (*log.Logger, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return logger, buf
}

// SafeBuffer is a bytes.Buffer safe for concurrent writers
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

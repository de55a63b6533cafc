package testutil

import (
	"context"
	"sync"
)

// MockTranslator mocks the translation client. It records every call and
// returns Translations[text] when present, otherwise Result and Err.
type MockTranslator struct {
	Translations map[string]string
	Result       string
	Err          error

	// Started receives one value per call before the result is returned
	Started chan struct{}
	// Release, when set, blocks every call until a value arrives
	Release chan struct{}
	// During runs inside every call, after Started
	During func()

	mu    sync.Mutex
	calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.During != nil {
		m.During()
	}
	if m.Release != nil {
		select {
		case <-m.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return m.Result, m.Err
}

// Calls returns the texts passed to Translate so far
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MockClipboard mocks the system clipboard
type MockClipboard struct {
	Err error

	mu      sync.Mutex
	written []string
}

// WriteText records text unless Err is set
func (m *MockClipboard) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, text)
	return nil
}

// Written returns every string written so far
func (m *MockClipboard) Written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.written...)
}

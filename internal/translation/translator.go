package translation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
)

// ErrNoAPIKey is returned when the provider has no API key configured
var ErrNoAPIKey = errors.New("API key not configured")

// ErrEmptyResult is returned when the provider answers without any choice
var ErrEmptyResult = errors.New("no translation returned")

// Provider translates text with one LLM backend
type Provider interface {
	// Name is the human readable provider name, e.g. "DeepSeek"
	Name() string
	// EnvVar is the environment variable holding the provider API key
	EnvVar() string
	// Configured reports whether an API key is set
	Configured() bool
	// Translate returns the translation of text
	Translate(ctx context.Context, text string) (string, error)
}

// Translator handles English to Russian translation through a Provider
type Translator struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
	cache    *TranslationCache
	logger   *log.Logger
}

// NewTranslator creates a new translator instance
func NewTranslator(provider Provider, logger *log.Logger) *Translator {
	if logger == nil {
		logger = log.Default()
	}

	return &Translator{
		provider: provider,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    provider.Name(),
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			// A missing key is a configuration problem, not a provider outage
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNoAPIKey)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("provider circuit breaker", "provider", name, "from", from, "to", to)
			},
		}),
		cache:  NewTranslationCache(),
		logger: logger,
	}
}

// Provider returns the provider used for translation
func (t *Translator) Provider() Provider {
	return t.provider
}

// Translate translates an English mod text to Russian
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if !t.provider.Configured() {
		return "", ErrNoAPIKey
	}

	if cached, ok := t.cache.Get(text); ok {
		t.logger.Debug("translation cache hit", "length", len([]rune(text)))
		return cached, nil
	}

	t.logger.Info("sending request to provider", "provider", t.provider.Name(), "length", len([]rune(text)))

	result, err := t.breaker.Execute(func() (interface{}, error) {
		return t.provider.Translate(ctx, text)
	})
	if err != nil {
		t.logger.Error("provider request failed", "provider", t.provider.Name(), "err", err)
		return "", fmt.Errorf("%s API error: %w", t.provider.Name(), err)
	}

	// Passed through as returned, whitespace included
	translation := result.(string)

	t.logger.Info("translation done", "provider", t.provider.Name(), "length", len([]rune(translation)))
	t.cache.Add(text, translation)
	return translation, nil
}

// TranslationCache stores translations in memory, keyed by source text
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[text] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[text]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

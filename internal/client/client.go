package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultEndpoint is the translation function the GUI talks to
	DefaultEndpoint = "https://functions.poehali.dev/b5762880-4461-498f-b0a4-869d34a41d08"

	// DefaultTimeout bounds a single translation request
	DefaultTimeout = 120 * time.Second

	// maxErrorBody limits how much of a failed response is kept for logging
	maxErrorBody = 512
)

// ErrMalformedResponse is returned when the endpoint answers 2xx with a body
// that is not the expected JSON document
var ErrMalformedResponse = errors.New("malformed translation response")

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("translation endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Request is the JSON body sent to the endpoint
type Request struct {
	Text string `json:"text"`
}

// Response is the JSON body returned by the endpoint
type Response struct {
	TranslatedText   string `json:"translatedText"`
	OriginalLength   int    `json:"originalLength,omitempty"`
	TranslatedLength int    `json:"translatedLength,omitempty"`
}

// Config holds HTTP client configuration
type Config struct {
	Endpoint string
	// Timeout of one request; zero means no timeout
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client sends translation requests to the HTTP endpoint
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a client. Missing config fields fall back to DefaultEndpoint,
// http.DefaultClient and the default logger.
func New(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	return &Client{
		endpoint:   config.Endpoint,
		timeout:    config.Timeout,
		httpClient: config.HTTPClient,
		logger:     config.Logger,
	}
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Translate posts text to the endpoint and returns the translated text.
// Every failure (transport, non-2xx status, undecodable body) is returned as
// an error; there is no partial result and no retry.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.post(ctx, text)
	if err != nil {
		return "", err
	}

	return result.TranslatedText, nil
}

func (c *Client) post(ctx context.Context, text string) (*Response, error) {
	body, err := json.Marshal(Request{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending translation request", "endpoint", c.endpoint, "bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var decoded struct {
		TranslatedText   *string `json:"translatedText"`
		OriginalLength   int     `json:"originalLength"`
		TranslatedLength int     `json:"translatedLength"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.TranslatedText == nil {
		return nil, fmt.Errorf("%w: translatedText missing", ErrMalformedResponse)
	}

	result := Response{
		TranslatedText:   *decoded.TranslatedText,
		OriginalLength:   decoded.OriginalLength,
		TranslatedLength: decoded.TranslatedLength,
	}

	c.logger.Debug("translation received", "status", resp.StatusCode, "translatedLength", result.TranslatedLength)
	return &result, nil
}

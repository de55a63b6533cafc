// Package handler exposes the translation backend as an API Gateway proxy
// handler, usable both from AWS Lambda and as a plain http.Handler.
package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/charmbracelet/log"

	"codeberg.org/snonux/modtranslator/internal"
	"codeberg.org/snonux/modtranslator/internal/messages"
	"codeberg.org/snonux/modtranslator/internal/translation"
)

const (
	// maxBodyBytes caps request bodies accepted by ServeHTTP
	maxBodyBytes = 10 << 20

	// ProviderTimeout bounds one provider call
	ProviderTimeout = 60 * time.Second
)

// Translator is what the handler needs from translation.Translator
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	Provider() translation.Provider
}

// Request is the JSON body accepted by the handler
type Request struct {
	Text string `json:"text"`
}

// Response is the JSON body returned on success
type Response struct {
	TranslatedText   string `json:"translatedText"`
	OriginalLength   int    `json:"originalLength"`
	TranslatedLength int    `json:"translatedLength"`
}

// ErrorResponse is the JSON body returned on failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler answers translation requests
type Handler struct {
	translator Translator
	catalog    *messages.Catalog
	logger     *log.Logger
	timeout    time.Duration
}

// New creates a Handler. A nil catalog uses the default locale, a nil
// logger the default logger.
func New(translator Translator, catalog *messages.Catalog, logger *log.Logger) *Handler {
	if catalog == nil {
		catalog = messages.NewCatalog(messages.DefaultLocale)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		translator: translator,
		catalog:    catalog,
		logger:     logger,
		timeout:    ProviderTimeout,
	}
}

// Handle processes one API Gateway proxy request. Failures are reported in
// the response; the returned error is always nil so the platform never retries.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.Debug("request", "method", req.HTTPMethod, "path", req.Path)

	switch req.HTTPMethod {
	case http.MethodOptions:
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "POST, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Max-Age":       "86400",
			},
		}, nil
	case http.MethodPost:
	default:
		return h.fail(http.StatusMethodNotAllowed, h.catalog.T(messages.MethodNotAllowed, nil)), nil
	}

	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return h.fail(http.StatusBadRequest, h.catalog.T(messages.InvalidJSON, nil)), nil
		}
		body = string(decoded)
	}

	var in Request
	if body != "" {
		if err := json.Unmarshal([]byte(body), &in); err != nil {
			h.logger.Warn("invalid request body", "err", err)
			return h.fail(http.StatusBadRequest, h.catalog.T(messages.InvalidJSON, nil)), nil
		}
	}
	if in.Text == "" {
		return h.fail(http.StatusBadRequest, h.catalog.T(messages.NoText, nil)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	translated, err := h.translator.Translate(ctx, in.Text)
	if err != nil {
		if errors.Is(err, translation.ErrNoAPIKey) {
			p := h.translator.Provider()
			h.logger.Error("provider not configured", "provider", p.Name(), "env", p.EnvVar())
			return h.fail(http.StatusInternalServerError, h.catalog.T(messages.NoAPIKey, map[string]any{
				"Provider": p.Name(),
				"EnvVar":   p.EnvVar(),
			})), nil
		}
		h.logger.Error("translation failed", "err", err)
		return h.fail(http.StatusInternalServerError, h.catalog.T(messages.ProviderFailed, map[string]any{
			"Detail": err.Error(),
		})), nil
	}

	return h.respond(http.StatusOK, Response{
		TranslatedText:   translated,
		OriginalLength:   internal.CountChars(in.Text),
		TranslatedLength: internal.CountChars(translated),
	}), nil
}

func (h *Handler) fail(status int, message string) events.APIGatewayProxyResponse {
	return h.respond(status, ErrorResponse{Error: message})
}

// respond encodes v as JSON, keeping non-ASCII and HTML characters literal
func (h *Handler) respond(status int, v any) events.APIGatewayProxyResponse {
	body, err := marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response", "err", err)
		status = http.StatusInternalServerError
		body = `{"error":"internal error"}`
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: body,
	}
}

func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ServeHTTP adapts an HTTP request to Handle
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeResponse(w, h.fail(http.StatusRequestEntityTooLarge, h.catalog.T(messages.BodyTooLarge, nil)))
		return
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	resp, _ := h.Handle(r.Context(), events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Headers:    headers,
		Body:       string(body),
	})
	h.writeResponse(w, resp)
}

func (h *Handler) writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		io.WriteString(w, resp.Body)
	}
}

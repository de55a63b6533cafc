package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"codeberg.org/snonux/modtranslator/internal/client"
	"codeberg.org/snonux/modtranslator/internal/handler"
	"codeberg.org/snonux/modtranslator/internal/messages"
	"codeberg.org/snonux/modtranslator/internal/translation"
	"codeberg.org/snonux/modtranslator/internal/view"
)

// Client transports
const (
	TransportHTTP   = "http"
	TransportLambda = "lambda"
)

// ErrNoLambdaFunction is returned for the lambda transport without a function name
var ErrNoLambdaFunction = errors.New("lambda transport needs client.lambda_function")

// Settings is the effective configuration after flags, environment and
// config file have been merged by viper
type Settings struct {
	Locale   string
	LogLevel string

	Endpoint       string
	Timeout        time.Duration
	Transport      string
	LambdaFunction string

	Provider string
	Model    string
	Listen   string
}

// LoadSettings reads the effective settings from viper
func LoadSettings() Settings {
	return Settings{
		Locale:         viper.GetString("ui.locale"),
		LogLevel:       viper.GetString("log.level"),
		Endpoint:       viper.GetString("client.endpoint"),
		Timeout:        viper.GetDuration("client.timeout"),
		Transport:      viper.GetString("client.transport"),
		LambdaFunction: viper.GetString("client.lambda_function"),
		Provider:       viper.GetString("backend.provider"),
		Model:          viper.GetString("backend.model"),
		Listen:         viper.GetString("backend.listen"),
	}
}

// NewLogger creates the application logger writing to w. Unknown levels
// fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "modtranslator",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// NewClientTranslator creates the translation client for the configured transport
func NewClientTranslator(ctx context.Context, s Settings, logger *log.Logger) (view.Translator, error) {
	switch s.Transport {
	case "", TransportHTTP:
		return client.New(client.Config{
			Endpoint: s.Endpoint,
			Timeout:  s.Timeout,
			Logger:   logger,
		}), nil
	case TransportLambda:
		if s.LambdaFunction == "" {
			return nil, ErrNoLambdaFunction
		}
		return client.NewLambdaTransport(ctx, s.LambdaFunction, s.Timeout, logger)
	default:
		return nil, fmt.Errorf("unknown transport %q (use %s or %s)", s.Transport, TransportHTTP, TransportLambda)
	}
}

// NewBackend creates the translation backend handler for the configured provider
func NewBackend(s Settings, logger *log.Logger) (*handler.Handler, error) {
	provider, err := translation.NewProvider(s.Provider, GetProviderKey(s.Provider), s.Model)
	if err != nil {
		return nil, err
	}

	if !provider.Configured() {
		logger.Warn("provider has no API key, requests will fail", "provider", provider.Name(), "env", provider.EnvVar())
	}

	translator := translation.NewTranslator(provider, logger)
	return handler.New(translator, messages.NewCatalog(s.Locale), logger), nil
}

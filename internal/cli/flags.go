package cli

import (
	"time"

	"codeberg.org/snonux/modtranslator/internal/client"
	"codeberg.org/snonux/modtranslator/internal/messages"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	Locale   string
	LogLevel string

	// Client flags
	Endpoint       string
	Timeout        time.Duration
	Transport      string
	LambdaFunction string

	// Backend flags
	Provider string
	Model    string
	Listen   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Locale:    messages.DefaultLocale,
		LogLevel:  "info",
		Endpoint:  client.DefaultEndpoint,
		Timeout:   client.DefaultTimeout,
		Transport: TransportHTTP,
		Provider:  "deepseek",
		Listen:    ":8080",
	}
}

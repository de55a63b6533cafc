// Package main is the entry point for the translation backend Lambda function.
// It carries no GUI dependencies so it builds without cgo.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"

	"codeberg.org/snonux/modtranslator/internal/cli"
)

func main() {
	// Configuration comes from the environment, e.g. MODTRANSLATOR_BACKEND_PROVIDER
	cli.InitConfig("")

	s := cli.LoadSettings()
	logger := cli.NewLogger(os.Stderr, s.LogLevel)
	log.SetDefault(logger)

	backend, err := cli.NewBackend(s, logger)
	if err != nil {
		logger.Fatal("failed to create backend", "err", err)
	}

	lambda.Start(backend.Handle)
}

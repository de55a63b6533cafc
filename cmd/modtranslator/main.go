package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/modtranslator/internal/cli"
	"codeberg.org/snonux/modtranslator/internal/gui"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// No subcommand: launch the GUI
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGUI(cmd)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command) error {
	s := cli.LoadSettings()
	logger := cli.NewLogger(os.Stderr, s.LogLevel)
	log.SetDefault(logger)

	translator, err := cli.NewClientTranslator(cmd.Context(), s, logger)
	if err != nil {
		return err
	}

	logger.Info("starting translator window", "transport", s.Transport, "endpoint", s.Endpoint)

	app := gui.New(&gui.Config{
		Translator: translator,
		Locale:     s.Locale,
		Logger:     logger,
	})
	app.Run()
	return nil
}

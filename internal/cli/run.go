package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/modtranslator/internal/messages"
	"codeberg.org/snonux/modtranslator/internal/models"
	"codeberg.org/snonux/modtranslator/internal/translation"
	"codeberg.org/snonux/modtranslator/internal/view"
)

// shutdownTimeout bounds how long serve waits for in-flight requests
const shutdownTimeout = 10 * time.Second

func createTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once and print the result",
		Long: `Translate text through the configured endpoint and print the translation.
Without an argument the text is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := LoadSettings()
			logger := NewLogger(cmd.ErrOrStderr(), s.LogLevel)

			translator, err := NewClientTranslator(cmd.Context(), s, logger)
			if err != nil {
				return err
			}
			return RunTranslate(cmd.Context(), translator, s.Locale, args, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
}

// RunTranslate translates args[0], or stdin when args is empty, and writes
// the translation to out. Notifications go to the logger.
func RunTranslate(ctx context.Context, translator view.Translator, locale string, args []string, in io.Reader, out io.Writer, logger *log.Logger) error {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	ctrl := view.NewController(translator,
		view.WithCatalog(messages.NewCatalog(locale)),
		view.WithLogger(logger),
		view.WithNotifier(view.NotifierFunc(func(n view.Notification) {
			if n.Destructive {
				logger.Error(n.Title, "message", n.Description)
				return
			}
			logger.Info(n.Title, "message", n.Description)
		})),
	)

	ctrl.EditSource(text)
	if err := ctrl.Translate(ctx); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, ctrl.State().TranslatedText)
	return err
}

func createModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the chat models available from DeepSeek",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := LoadSettings()
			current := s.Model
			if current == "" {
				current = translation.DeepSeekModel
			}

			lister := models.NewLister(GetDeepSeekKey(), translation.DeepSeekBaseURL)
			return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout(), current)
		},
	}
}

func createServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation backend as an HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := LoadSettings()
			logger := NewLogger(cmd.ErrOrStderr(), s.LogLevel)

			backend, err := NewBackend(s, logger)
			if err != nil {
				return err
			}
			return Serve(cmd.Context(), s.Listen, backend, logger)
		},
	}

	cmd.Flags().StringVar(&flags.Listen, "listen", flags.Listen, "Address to listen on")
	viper.BindPFlag("backend.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

// Serve runs handler on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("translation backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func createLambdaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run the translation backend as an AWS Lambda function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := LoadSettings()
			logger := NewLogger(cmd.ErrOrStderr(), s.LogLevel)

			backend, err := NewBackend(s, logger)
			if err != nil {
				return err
			}

			// Start blocks for the lifetime of the function instance
			lambda.Start(backend.Handle)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/modtranslator/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modtranslator",
		Short: "Game mod translator (English to Russian)",
		Long: `modtranslator translates game mod texts for TES Skyrim and The Witcher 3
from English to Russian, keeping game terminology, tags and variables intact.

Examples:
  modtranslator                              # Launch the translator window (default)
  modtranslator translate "Hello, traveler." # Translate from the command line
  cat strings.txt | modtranslator translate  # Translate stdin
  modtranslator serve --listen :8080         # Run the translation backend locally
  modtranslator lambda                       # Run the backend as an AWS Lambda`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		createTranslateCommand(),
		createModelsCommand(),
		createServeCommand(flags),
		createLambdaCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.modtranslator.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Locale, "locale", flags.Locale, "UI and backend message locale (ru or en)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Client flags
	cmd.PersistentFlags().StringVar(&flags.Endpoint, "endpoint", flags.Endpoint, "Translation endpoint URL")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of one translation request (0 disables)")
	cmd.PersistentFlags().StringVar(&flags.Transport, "transport", flags.Transport, "Client transport: http or lambda")
	cmd.PersistentFlags().StringVar(&flags.LambdaFunction, "lambda-function", "", "Function name or ARN for the lambda transport")

	// Backend flags
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Backend LLM provider: deepseek or gemini")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Backend model (default: provider specific)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("ui.locale", cmd.PersistentFlags().Lookup("locale"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("client.endpoint", cmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("client.timeout", cmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("client.transport", cmd.PersistentFlags().Lookup("transport"))
	viper.BindPFlag("client.lambda_function", cmd.PersistentFlags().Lookup("lambda-function"))
	viper.BindPFlag("backend.provider", cmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("backend.model", cmd.PersistentFlags().Lookup("model"))
}

// InitConfig loads an optional .env file and initializes viper configuration
func InitConfig(cfgFile string) {
	// Keys in .env never override variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	// Environment variables, e.g. MODTRANSLATOR_CLIENT_ENDPOINT
	viper.SetEnvPrefix("MODTRANSLATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults for binaries that register no flags, e.g. cmd/lambda
	viper.SetDefault("log.level", "info")
	viper.SetDefault("ui.locale", "ru")
	viper.SetDefault("backend.provider", "deepseek")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".modtranslator" (without extension)
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		} else {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".modtranslator")
	}

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetDeepSeekKey retrieves the DeepSeek API key from environment or config
func GetDeepSeekKey() string {
	// First check environment variable
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("backend.deepseek_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("backend.gemini_key")
}

// GetProviderKey returns the API key of the named backend provider
func GetProviderKey(provider string) string {
	if provider == "gemini" {
		return GetGeminiKey()
	}
	return GetDeepSeekKey()
}

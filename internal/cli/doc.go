// Package cli provides command-line interface setup and configuration
// for the modtranslator application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and wires
// the translate, serve and lambda subcommands.
package cli

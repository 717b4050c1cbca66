package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	format   string
)

var rootCmd = &cobra.Command{
	Use:   "potctl",
	Short: "MCP443x/MCP445x digital potentiometer frame tool",
	Long: `potctl builds and decodes the I2C frames of the MCP443x/MCP445x quad
digital potentiometers, and can apply a board description to real hardware
(/dev/i2c-N) or to the built-in emulator (bus "sim").

Output formats:
  hex   human-readable text (default)
  json  one JSON document
  cbor  one CBOR document (binary)`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch format {
		case formatHex, formatJSON, formatCBOR:
		default:
			return fmt.Errorf("unknown --format %q (hex, json, cbor)", format)
		}
		_, err := zerolog.ParseLevel(logLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", formatHex, "Output format (hex, json, cbor)")

	rootCmd.AddCommand(frameCmd, decodeCmd, applyCmd, simulateCmd)
}

// newLogger returns the stderr console logger at the configured level.
func newLogger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).With().Timestamp().Logger()
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

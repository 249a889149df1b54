package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/registry"
	"github.com/rezonia/invoice-studio/pkg/logutil"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	dataDir      string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-studio",
	Short: "Compose invoices and export them to portable formats",
	Long: `Invoice Studio is a CLI tool for composing billing documents and
exporting them to portable formats.

Supports:
  - Derived-totals engine: subtotal, discount, tax and total stay consistent
  - Exports: PDF, PNG, CSV, JSON, XLSX
  - Reusable client names and line item templates, persisted locally

Examples:
  # Export an invoice document to PDF and CSV
  invoice-studio export invoice.json --formats pdf,csv

  # Recompute and print the totals breakdown
  invoice-studio totals invoice.json

  # Check invoice invariants
  invoice-studio check invoice.json

  # Start the local editing API
  invoice-studio serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for saved clients and items (env: INVOICE_STUDIO_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("INVOICE_STUDIO")
	viper.AutomaticEnv()

	if dataDir == "" {
		dataDir = viper.GetString("DATA_DIR")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".invoice-studio")
	}
	if lvl := viper.GetString("LOG_LEVEL"); lvl != "" && !rootCmd.PersistentFlags().Changed("log-level") {
		logLevel = lvl
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func newLogger() (*zap.Logger, error) {
	level := logLevel
	if verbose {
		level = "debug"
	}
	return logutil.NewLogger(logutil.Config{
		Level:  level,
		Output: "stderr",
		Format: "console",
	})
}

// openRegistry opens the persisted registry in the data directory. The
// returned cleanup closes the underlying database.
func openRegistry(logger *zap.Logger) (*registry.Registry, func(), error) {
	store, err := registry.OpenSQLite(filepath.Join(dataDir, "registry.db"), logger)
	if err != nil {
		return nil, nil, err
	}

	reg, err := registry.Load(store, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return reg, func() { _ = store.Close() }, nil
}

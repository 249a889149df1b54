package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editing API",
	Long: `Start a local HTTP API for editing and exporting one invoice session.

The API provides endpoints for:
  - GET/PUT  /api/v1/invoice          - Read or replace the invoice document
  - GET/PUT  /api/v1/branding         - Read or replace the branding options
  - POST     /api/v1/items            - Append a line item (blank or from template)
  - PATCH    /api/v1/items/:id        - Edit one line item
  - DELETE   /api/v1/items/:id        - Remove a line item (never the last one)
  - PUT      /api/v1/discount|tax|charges|watermark|header|footer|...
  - GET/POST /api/v1/clients          - Saved client names
  - GET/POST /api/v1/item-templates   - Saved line item templates
  - GET      /api/v1/export/:format   - Export (pdf, png, csv, json, xlsx)
  - GET      /health                  - Health check

Examples:
  # Start on the default port
  invoice-studio serve

  # Start on a custom port in debug mode
  invoice-studio serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, cleanup, err := openRegistry(logger)
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	defer cleanup()

	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv := server.NewServer(config, reg, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		cleanup()
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	fmt.Printf("Registry data in %s\n", dataDir)

	return srv.Run()
}

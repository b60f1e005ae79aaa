package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/server"
)

var (
	serveListen   string
	serveLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the wakehub HTTP server.

The server exposes device registration, Wake-on-LAN dispatch, single and bulk
liveness probes, and a websocket status stream. See the server package
documentation for the endpoint list.`,
	Example: `  # Start with defaults (listens on :5050)
  wakehub serve

  # Custom bind address with debug logging
  wakehub serve --listen 127.0.0.1:8080 --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Bind address (default from config, \":5050\")")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(serveLogLevel); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	path, err := cfg.ResolveStorePath()
	if err != nil {
		return err
	}

	store, err := registry.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open device registry: %w", err)
	}

	return server.New(cfg, store).Start()
}

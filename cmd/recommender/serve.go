package main

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-recommender/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveCatalog    string
	servePort       int
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes recommendation and catalog endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Path to catalog JSON file (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job postings")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}

	// Flags win over config file and environment.
	if serveCatalog != "" {
		cfg.Catalog = serveCatalog
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveUseBrowser {
		cfg.UseBrowser = true
	}
	if serveVerbose {
		cfg.Verbose = true
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
	}, engine)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

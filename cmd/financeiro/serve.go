package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/config"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/server"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/util"
)

var (
	servePort    int
	serveDev     bool
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load config, using defaults")
			cfg = config.DefaultConfig()
		}

		// command-line flags override the configuration file
		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		if serveDev {
			cfg.Server.DevMode = true
		}
		if serveDataDir != "" {
			cfg.Data.DataDir = serveDataDir
		}

		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		logger.Info().Str("dataDir", dataDir).Msg("data directory ready")

		srv, err := server.NewServer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}
		defer srv.Close()

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		go func() {
			logger.Info().Int("port", cfg.Server.Port).Msg("server starting")
			if err := srv.Run(addr); err != nil {
				logger.Fatal().Err(err).Msg("server failed")
			}
		}()

		url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		if !cfg.Server.DevMode {
			if err := util.OpenBrowserWithFallback(url); err != nil {
				fmt.Printf("Could not open a browser, visit %s manually\n", url)
			}
		}
		fmt.Printf("Listening on %s (press Ctrl+C to stop)\n", url)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		fmt.Println("\nShutting down...")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (overrides config.toml)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode")
	serveCmd.Flags().StringVar(&serveDataDir, "dataDir", "", "data directory (overrides config.toml)")
	rootCmd.AddCommand(serveCmd)
}

package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"voice-transcriber/internal/app"
	"voice-transcriber/internal/config"
)

const shutdownTimeout = 30 * time.Second

var (
	configPath string
	port       string
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "service configuration file (optional)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides the configuration")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP transcription server",
	Long: `Start the HTTP transcription server.

POST /process-audio accepts a multipart "file" field and answers with
{"transcription": "..."} or {"error": "Transcription failed: ..."}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if port != "" {
			cfg.Server.Port = port
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		keys := config.GetAPIKeys()

		srv, cleanup, err := app.InitializeServer(cfg, keys)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		var serveErr error
		select {
		case <-ctx.Done():
		case serveErr = <-srv.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return serveErr
	},
}

package transcribe

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"voice-transcriber/internal/app"
	"voice-transcriber/internal/app/batch"
	"voice-transcriber/internal/config"
)

var (
	configPath   string
	sourceFormat string
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "service configuration file (optional)")
	Cmd.Flags().StringVarP(&sourceFormat, "format", "f", "", "container of the input files, overrides audio.source_format")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "force the progress bar even when stderr is not a terminal")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>...",
	Short: "Transcribe local audio files",
	Long: `Transcribe local audio files with the same pipeline the server uses.

One JSON object per file is written to stdout:
{"file": "...", "transcription": "..."} or {"file": "...", "error": "...", "code": "..."}`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if sourceFormat != "" {
			cfg.Audio.SourceFormat = sourceFormat
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		// Per-request info lines would tear the progress bar on stderr
		cfg.Log.Level = "warn"

		keys := config.GetAPIKeys()

		service, cleanup, err := app.InitializeService(cfg, keys)
		if err != nil {
			return fmt.Errorf("failed to initialize transcription service: %w", err)
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		progress := batch.NewProgressManager(batch.ProgressConfig{
			Enabled: batch.ShouldShowProgress(showProgress),
			Writer:  cmd.ErrOrStderr(),
		})
		bar := progress.CreateBar(len(args), "Transcribing")

		summary, err := batch.NewRunner(service, cmd.OutOrStdout(), bar).Run(ctx, args)
		progress.Wait()
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Failed+summary.Succeeded)
		}
		return nil
	},
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"voice-transcriber/cmd/transcriber/cmd/serve"
	"voice-transcriber/cmd/transcriber/cmd/transcribe"
	"voice-transcriber/cmd/transcriber/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcriber",
	Short: "Speech-to-text for uploaded audio clips",
	Long: `Speech-to-text for uploaded audio clips.
- serve exposes POST /process-audio for browser recordings
- transcribe runs local files through the same pipeline
Audio is converted with ffmpeg and transcribed by OpenAI Whisper or Gemini.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

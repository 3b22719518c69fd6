package main

import (
	"fmt"
	"os"

	"voice-transcriber/cmd/transcriber/cmd"
	"voice-transcriber/internal/config"

	// Import providers to register them
	_ "voice-transcriber/internal/app/api/gemini"
	_ "voice-transcriber/internal/app/api/openai/whisper"
)

// @title Voice Transcriber API
// @version 1.0
// @description Transcribes browser audio recordings with ffmpeg and a speech-to-text provider.
// @BasePath /
func main() {
	// Non-blocking: an unreadable .env leaves the process environment as is
	if _, _, err := config.InitializeKeys(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}

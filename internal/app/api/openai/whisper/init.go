package whisper

import (
	"voice-transcriber/internal/app/api"
	"voice-transcriber/internal/app/api/openai"
	"voice-transcriber/internal/app/api/provider"
	"voice-transcriber/internal/config"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(config.ProviderOpenAI, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from settings.
// A missing API key is reported by OpenAI on the first call.
func createOpenAIProvider(settings provider.Settings) (api.Transcriber, error) {
	client := openai.NewClient(settings.APIKey, settings.BaseURL, settings.Timeout)
	return NewRemoteTranscriber(client, settings.Model), nil
}

package gemini

import (
	"context"
	"net/http"

	"voice-transcriber/internal/app/api"
	"voice-transcriber/internal/app/api/provider"
	"voice-transcriber/internal/config"
)

func init() {
	provider.RegisterProvider(config.ProviderGemini, createGeminiProvider)
}

// createGeminiProvider needs the key up front: genai refuses to build a client without one
func createGeminiProvider(settings provider.Settings) (api.Transcriber, error) {
	client, err := NewClient(context.Background(), settings.APIKey, settings.BaseURL, &http.Client{Timeout: settings.Timeout})
	if err != nil {
		return nil, err
	}
	return NewTranscriber(client, settings.Model), nil
}

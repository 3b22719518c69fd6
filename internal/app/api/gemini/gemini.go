package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
	"voice-transcriber/internal/app/audio"
)

const transcriptionPrompt = "Transcribe the speech in this audio clip verbatim. " +
	"Respond with the transcript as plain text only, without commentary, timestamps or speaker labels."

// Transcriber sends audio to a Gemini model as inline data and returns the text reply
type Transcriber struct {
	client *genai.Client
	model  string
}

// NewTranscriber creates a Gemini-backed transcriber using an existing client
func NewTranscriber(client *genai.Client, model string) *Transcriber {
	return &Transcriber{client: client, model: model}
}

// NewClient creates a genai client for the Gemini API
func NewClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini provider requires GEMINI_API_KEY")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// Transcript reads the audio file and asks the model for a plain-text transcript.
// The MIME type is derived from the file extension.
func (t *Transcriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	format, ok := audio.FormatForExtension(filepath.Ext(inputFilePath))
	if !ok {
		return "", fmt.Errorf("cannot infer audio type of %s", filepath.Base(inputFilePath))
	}

	data, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcriptionPrompt),
			genai.NewPartFromBytes(data, format.MIMEType),
		}, genai.RoleUser),
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generateContent failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	return strings.TrimSpace(resp.Text()), nil
}

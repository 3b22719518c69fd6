package whisper

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
// An empty model selects whisper-1.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcript opens the file and submits it to the OpenAI API, asking for a
// plain-text response.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	audioFile, err := os.Open(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer audioFile.Close()

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Reader:   audioFile,
		Format:   openai.AudioResponseFormatText,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// Model returns the speech-recognition model requests are sent with
func (rt *RemoteTranscriber) Model() string {
	return rt.model
}

package services

import (
	"context"
	"io"

	"voice-transcriber/internal/app/transcription"
)

// AudioProcessor turns an uploaded clip into a transcription result
type AudioProcessor interface {
	Handle(ctx context.Context, upload io.Reader, filename string) transcription.Result
}

var _ AudioProcessor = (*transcription.Service)(nil)

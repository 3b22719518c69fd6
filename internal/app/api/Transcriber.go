package api

import "context"

// Transcriber defines a transcription interface for converting audio files to text.
// The provider receives a path to a readable file whose extension names its format;
// some provider clients infer the audio format from the extension rather than the content.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

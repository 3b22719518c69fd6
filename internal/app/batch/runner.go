package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"voice-transcriber/internal/app/transcription"
)

// Processor turns one upload into a transcription result
type Processor interface {
	Handle(ctx context.Context, upload io.Reader, filename string) transcription.Result
}

// Line is one JSON output record
type Line struct {
	File          string  `json:"file"`
	Transcription *string `json:"transcription,omitempty"`
	Error         *string `json:"error,omitempty"`
	Code          string  `json:"code,omitempty"`
}

// Summary counts the processed files
type Summary struct {
	Succeeded int
	Failed    int
}

// Runner feeds local audio files through a Processor one at a time
type Runner struct {
	processor Processor
	out       *json.Encoder
	bar       *ProgressBar
}

// NewRunner writes one JSON line per file to out. bar may be nil.
func NewRunner(processor Processor, out io.Writer, bar *ProgressBar) *Runner {
	return &Runner{
		processor: processor,
		out:       json.NewEncoder(out),
		bar:       bar,
	}
}

// Run processes paths in order. It stops early only when ctx is cancelled or
// output cannot be written; per-file failures are reported as lines.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, error) {
	var summary Summary
	defer r.bar.Complete()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		start := time.Now()
		line := r.processFile(ctx, path)
		r.bar.Increment(time.Since(start))

		if line.Error != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		if err := r.out.Encode(line); err != nil {
			return summary, fmt.Errorf("write result for %s: %w", path, err)
		}
	}
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, path string) Line {
	line := Line{File: path}

	f, err := os.Open(path)
	if err != nil {
		message := err.Error()
		line.Error = &message
		line.Code = "open_failed"
		return line
	}
	defer f.Close()

	result := r.processor.Handle(ctx, f, filepath.Base(path))
	if result.OK() {
		line.Transcription = &result.Transcript
		return line
	}
	line.Error = &result.Err.Message
	line.Code = string(result.Err.Code)
	return line
}

package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyInput is returned when there is no audio to transcode
var ErrEmptyInput = errors.New("empty audio payload")

// Transcoder converts an in-memory audio payload between container formats.
// Implementations must be safe for concurrent use and must fail on input that
// cannot be decoded as the declared source format.
type Transcoder interface {
	Transcode(ctx context.Context, data []byte, from, to Format) ([]byte, error)
}

// FFmpegTranscoder shells out to ffmpeg, streaming through stdin/stdout pipes
// so no intermediate files are written.
type FFmpegTranscoder struct {
	binaryPath string
}

// NewFFmpegTranscoder creates a transcoder using the given ffmpeg binary.
// An empty path falls back to "ffmpeg" on PATH.
func NewFFmpegTranscoder(binaryPath string) *FFmpegTranscoder {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &FFmpegTranscoder{binaryPath: binaryPath}
}

// Transcode decodes data as from and re-encodes the audio stream as to
func (t *FFmpegTranscoder) Transcode(ctx context.Context, data []byte, from, to Format) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	cmd := exec.CommandContext(ctx, t.binaryPath, ffmpegArgs(from, to)...)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("ffmpeg %s to %s interrupted: %w", from, to, ctxErr)
		}
		return nil, fmt.Errorf("FFmpeg error: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no %s output from %d input bytes", to, len(data))
	}

	return stdout.Bytes(), nil
}

func ffmpegArgs(from, to Format) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", from.Name,
		"-i", "pipe:0",
		"-vn",
		"-f", to.Name,
		"pipe:1",
	}
}

var _ Transcoder = (*FFmpegTranscoder)(nil)

package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"voice-transcriber/internal/app/api"
	"voice-transcriber/internal/app/audio"
	"voice-transcriber/internal/app/util/files"
)

// Stage names reported to the Recorder
const (
	StageTranscode  = "transcode"
	StageTranscribe = "transcribe"
)

// Outcome labels besides the failure codes
const (
	OutcomeSuccess = "success"
	// OutcomeAborted marks a request that unwound without producing a Result
	OutcomeAborted = "aborted"
)

const artifactPrefix = "transcribe"

// Recorder receives per-request measurements
type Recorder interface {
	RequestStarted()
	RequestFinished(provider, outcome string)
	UploadObserved(size int)
	StageObserved(stage string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RequestStarted()                     {}
func (nopRecorder) RequestFinished(string, string)      {}
func (nopRecorder) UploadObserved(int)                  {}
func (nopRecorder) StageObserved(string, time.Duration) {}

// Options configures a Service
type Options struct {
	SourceFormat audio.Format
	TargetFormat audio.Format
	// TempDir holds the transcoded artifact; empty means the system temp directory
	TempDir string
	// MaxUploadBytes caps the buffered upload; 0 disables the cap
	MaxUploadBytes int64
	// Provider labels metrics
	Provider string
}

// Service turns an uploaded clip into a transcript.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	transcoder  audio.Transcoder
	transcriber api.Transcriber
	opts        Options
	logger      *zap.Logger
	recorder    Recorder
}

// NewService wires the transcoder and provider client together. A nil logger or
// recorder disables that concern.
func NewService(transcoder audio.Transcoder, transcriber api.Transcriber, opts Options, logger *zap.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		transcoder:  transcoder,
		transcriber: transcriber,
		opts:        opts,
		logger:      logger,
		recorder:    recorder,
	}
}

// Handle buffers the upload, converts it to the target format, stores it in a
// temporary file for the provider and returns the transcript. Every failure is
// reported through Result.Err; the temporary file never outlives the call.
func (s *Service) Handle(ctx context.Context, upload io.Reader, filename string) Result {
	s.recorder.RequestStarted()
	outcome := OutcomeAborted
	defer func() {
		s.recorder.RequestFinished(s.opts.Provider, outcome)
	}()

	s.logger.Info("Processing audio", zap.String("filename", filename))
	result := s.process(ctx, upload)
	if !result.OK() {
		outcome = string(result.Err.Code)
		return result
	}

	outcome = OutcomeSuccess
	s.logger.Info("Transcription", zap.String("filename", filename), zap.String("transcript", result.Transcript))
	return result
}

func (s *Service) process(ctx context.Context, upload io.Reader) Result {
	data, err := s.buffer(upload)
	if err != nil {
		var tooLarge *uploadTooLargeError
		if errors.As(err, &tooLarge) {
			return Failure(CodeUploadTooLarge, err)
		}
		return Failure(CodeUploadReadFailed, err)
	}
	s.recorder.UploadObserved(len(data))

	start := time.Now()
	converted, err := s.transcoder.Transcode(ctx, data, s.opts.SourceFormat, s.opts.TargetFormat)
	s.recorder.StageObserved(StageTranscode, time.Since(start))
	if err != nil {
		return Failure(CodeTranscodingFailed, err)
	}

	var transcript string
	err = files.WithTempArtifact(s.opts.TempDir, artifactPrefix, s.opts.TargetFormat.Extension, converted,
		func(path string) error {
			start := time.Now()
			text, err := s.transcriber.Transcript(ctx, path)
			s.recorder.StageObserved(StageTranscribe, time.Since(start))
			if err != nil {
				return err
			}
			transcript = text
			return nil
		})
	if err != nil {
		if errors.Is(err, files.ErrMaterialize) {
			return Failure(CodeArtifactFailed, err)
		}
		return Failure(CodeProviderFailed, err)
	}

	return Success(transcript)
}

type uploadTooLargeError struct {
	limit int64
}

func (e *uploadTooLargeError) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.limit)
}

func (s *Service) buffer(upload io.Reader) ([]byte, error) {
	if upload == nil {
		return nil, errors.New("no upload provided")
	}

	if s.opts.MaxUploadBytes <= 0 {
		data, err := io.ReadAll(upload)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(upload, s.opts.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		return nil, &uploadTooLargeError{limit: s.opts.MaxUploadBytes}
	}
	return data, nil
}

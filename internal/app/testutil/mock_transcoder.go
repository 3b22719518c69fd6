package testutil

import (
	"context"
	"sync"

	"voice-transcriber/internal/app/audio"
)

// MockTranscoder is an audio.Transcoder that, by default, tags its input with the
// target format name instead of running ffmpeg
type MockTranscoder struct {
	mu sync.Mutex

	DefaultError error
	// TransformFunc, when set, replaces the default tagging
	TransformFunc func(data []byte, from, to audio.Format) ([]byte, error)

	callCount int
}

// NewMockTranscoder returns a pass-through transcoder
func NewMockTranscoder() *MockTranscoder {
	return &MockTranscoder{}
}

// WithDefaultError makes every call fail with err
func (m *MockTranscoder) WithDefaultError(err error) *MockTranscoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithTransform replaces the default conversion
func (m *MockTranscoder) WithTransform(fn func(data []byte, from, to audio.Format) ([]byte, error)) *MockTranscoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TransformFunc = fn
	return m
}

// Transcode implements audio.Transcoder. Empty input fails like the real transcoder.
func (m *MockTranscoder) Transcode(ctx context.Context, data []byte, from, to audio.Format) ([]byte, error) {
	m.mu.Lock()
	m.callCount++
	defaultErr := m.DefaultError
	transform := m.TransformFunc
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if defaultErr != nil {
		return nil, defaultErr
	}
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}
	if transform != nil {
		return transform(data, from, to)
	}
	return append([]byte(to.Name+":"), data...), nil
}

// CallCount returns the number of Transcode invocations
func (m *MockTranscoder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

var _ audio.Transcoder = (*MockTranscoder)(nil)

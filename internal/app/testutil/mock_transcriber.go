package testutil

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"voice-transcriber/internal/app/api"
)

// MockTranscriber is a configurable api.Transcriber. Unless ExpectTranscript is used it
// answers from its defaults and records every call.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	DefaultResponse string
	DefaultError    error
	Latency         time.Duration
	// ResponseFunc, when set, derives the transcript from the artifact contents
	ResponseFunc func(content []byte) (string, error)

	useExpectations bool
	calls           []TranscriptionCall
}

// TranscriptionCall records one Transcript invocation
type TranscriptionCall struct {
	InputFilePath string
	// Content is the artifact as it existed during the call
	Content []byte
	Existed bool
	Err     error
}

// NewMockTranscriber returns a mock answering with a fixed transcript
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{DefaultResponse: "This is a mock transcription result."}
}

// WithDefaultResponse sets the transcript returned by default
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// WithDefaultError makes every call fail with err
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithLatency delays each call, honouring context cancellation
func (m *MockTranscriber) WithLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Latency = latency
	return m
}

// WithResponseFunc derives transcripts from the artifact contents
func (m *MockTranscriber) WithResponseFunc(fn func(content []byte) (string, error)) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseFunc = fn
	return m
}

// ExpectTranscript switches the mock to testify expectations for any path
func (m *MockTranscriber) ExpectTranscript(response string, err error) *mock.Call {
	m.mu.Lock()
	m.useExpectations = true
	m.mu.Unlock()
	return m.On("Transcript", mock.Anything, mock.AnythingOfType("string")).Return(response, err)
}

// Transcript implements api.Transcriber
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	content, readErr := os.ReadFile(inputFilePath)
	call := TranscriptionCall{InputFilePath: inputFilePath, Content: content, Existed: readErr == nil}

	m.mu.Lock()
	latency := m.Latency
	useExpectations := m.useExpectations
	responseFunc := m.ResponseFunc
	defaultResponse, defaultErr := m.DefaultResponse, m.DefaultError
	m.mu.Unlock()

	text, err := m.respond(ctx, inputFilePath, content, latency, useExpectations, responseFunc, defaultResponse, defaultErr)
	call.Err = err

	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
	return text, err
}

func (m *MockTranscriber) respond(ctx context.Context, path string, content []byte, latency time.Duration,
	useExpectations bool, responseFunc func([]byte) (string, error), defaultResponse string, defaultErr error) (string, error) {
	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if useExpectations {
		args := m.MethodCalled("Transcript", ctx, path)
		return args.String(0), args.Error(1)
	}
	if defaultErr != nil {
		return "", defaultErr
	}
	if responseFunc != nil {
		return responseFunc(content)
	}
	return defaultResponse, nil
}

// History returns a copy of the recorded calls
func (m *MockTranscriber) History() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TranscriptionCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Transcript invocations
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent call, or nil
func (m *MockTranscriber) LastCall() *TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

var _ api.Transcriber = (*MockTranscriber)(nil)

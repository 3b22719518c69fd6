package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voice-transcriber/internal/app/api/provider"
	"voice-transcriber/internal/config"
)

func writeClip(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("ID3-fake-mp3"), 0644))
	return path
}

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) *Transcriber {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), "AIzaTest-1234567890abcdef1234567890", server.URL+"/", server.Client())
	require.NoError(t, err)
	return NewTranscriber(client, config.DefaultGeminiModel)
}

func TestTranscriber_Transcript(t *testing.T) {
	var requestBody map[string]any
	var requestPath, apiKey string

	transcriber := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		apiKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &requestBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello from gemini\n"}]}}]}`))
	})

	text, err := transcriber.Transcript(context.Background(), writeClip(t, "clip.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "hello from gemini", text)

	assert.True(t, strings.HasSuffix(requestPath, "models/"+config.DefaultGeminiModel+":generateContent"), "path %s", requestPath)
	assert.Equal(t, "AIzaTest-1234567890abcdef1234567890", apiKey)

	raw, err := json.Marshal(requestBody)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "audio/mpeg")
	assert.Contains(t, string(raw), "inlineData")
}

func TestTranscriber_ProviderError(t *testing.T) {
	transcriber := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend unavailable","status":"INTERNAL"}}`))
	})

	_, err := transcriber.Transcript(context.Background(), writeClip(t, "clip.mp3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generateContent failed")
}

func TestTranscriber_NoCandidates(t *testing.T) {
	transcriber := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := transcriber.Transcript(context.Background(), writeClip(t, "clip.mp3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestTranscriber_UnknownExtension(t *testing.T) {
	transcriber := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called")
	})

	_, err := transcriber.Transcript(context.Background(), writeClip(t, "clip.m4a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot infer audio type")
}

func TestTranscriber_MissingFile(t *testing.T) {
	transcriber := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called")
	})

	_, err := transcriber.Transcript(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestProviderRegistration(t *testing.T) {
	assert.Contains(t, provider.ListRegisteredProviders(), config.ProviderGemini)

	_, err := provider.New(config.ProviderConfig{Name: config.ProviderGemini, Model: config.DefaultGeminiModel}, &config.APIKeys{})
	require.Error(t, err)

	transcriber, err := provider.New(config.ProviderConfig{Name: config.ProviderGemini, Model: config.DefaultGeminiModel},
		&config.APIKeys{Gemini: "AIzaTest-1234567890abcdef1234567890"})
	require.NoError(t, err)
	assert.IsType(t, &Transcriber{}, transcriber)
}

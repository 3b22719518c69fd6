package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"voice-transcriber/internal/app/audio"
	"voice-transcriber/internal/app/metrics"
	"voice-transcriber/internal/app/testutil"
	"voice-transcriber/internal/app/transcription"
	"voice-transcriber/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.ServiceConfig)) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Environment = "test"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Audio.TempDir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	service := transcription.NewService(
		testutil.NewMockTranscoder(),
		testutil.NewMockTranscriber().WithDefaultResponse("hello world"),
		transcription.Options{
			SourceFormat: audio.WebM,
			TargetFormat: audio.MP3,
			TempDir:      cfg.Audio.TempDir,
			Provider:     cfg.Provider.Name,
		},
		zap.NewNop(), m,
	)

	return NewServer(cfg, service, m, registry, zap.NewNop())
}

func uploadRequest(t *testing.T, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "clip.webm")
	require.NoError(t, err)
	_, _ = part.Write([]byte(content))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-audio", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Origin", "http://localhost:5173")
	return req
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServer_Info(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, config.ProviderOpenAI, body["provider"])
	assert.Contains(t, body["endpoints"], "process_audio")
	assert.Equal(t, "/swagger/index.html", body["documentation"])
}

func TestServer_Swagger(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/process-audio")
}

func TestServer_ProcessAudio(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, "webm-bytes"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transcription":"hello world"}`, w.Body.String())
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestServer_ProcessAudioFailureIs200(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Contains(t, body["error"], "Transcription failed: ")
}

func TestServer_StrictStatusCodes(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.ServiceConfig) {
		cfg.Server.StrictStatusCodes = true
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, ""))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestServer_Preflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/process-audio", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transcriptions", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"not_found"`)
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t, nil)

	srv.Router().ServeHTTP(httptest.NewRecorder(), uploadRequest(t, "webm-bytes"))

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `transcriber_requests_total{outcome="success",provider="openai"} 1`)
	assert.Contains(t, body, `transcriber_http_requests_total{endpoint="/process-audio",method="POST",status_code="200"} 1`)
}

func TestServer_MetricsCountPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/process-audio", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, w.Body.String(), `transcriber_http_requests_total{endpoint="unmatched",method="OPTIONS",status_code="204"} 1`)
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Start())

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-srv.Done():
		assert.False(t, ok, "unexpected serve error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartBindFailure(t *testing.T) {
	first := newTestServer(t, nil)
	require.NoError(t, first.Start())
	defer first.Shutdown(context.Background())

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	second := newTestServer(t, func(cfg *config.ServiceConfig) {
		cfg.Server.Port = port
	})
	assert.Error(t, second.Start())
}


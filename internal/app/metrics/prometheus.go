package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"voice-transcriber/internal/app/transcription"
)

const namespace = "transcriber"

// Metrics contains the Prometheus collectors of the transcription service
type Metrics struct {
	// Transcription metrics
	Requests      *prometheus.CounterVec
	InFlight      prometheus.Gauge
	UploadSize    prometheus.Histogram
	StageDuration *prometheus.HistogramVec

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Transcription requests by provider and outcome",
		}, []string{"provider", "outcome"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Transcription requests currently being handled",
		}),
		UploadSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of buffered uploads",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KB to ~256MB
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each processing stage",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		}, []string{"stage"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// RequestStarted increments the in-flight gauge
func (m *Metrics) RequestStarted() {
	m.InFlight.Inc()
}

// RequestFinished decrements the in-flight gauge and counts the outcome
func (m *Metrics) RequestFinished(provider, outcome string) {
	m.InFlight.Dec()
	m.Requests.WithLabelValues(provider, outcome).Inc()
}

// UploadObserved records the buffered upload size
func (m *Metrics) UploadObserved(size int) {
	m.UploadSize.Observe(float64(size))
}

// StageObserved records how long a stage took
func (m *Metrics) StageObserved(stage string, elapsed time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

var _ transcription.Recorder = (*Metrics)(nil)

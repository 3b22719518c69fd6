//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"voice-transcriber/internal/api/server"
	"voice-transcriber/internal/api/v1/services"
	"voice-transcriber/internal/app/metrics"
	"voice-transcriber/internal/app/transcription"
	"voice-transcriber/internal/config"
)

var serviceSet = wire.NewSet(
	provideLogger,
	provideRegistry,
	provideTranscoder,
	provideTranscriber,
	provideServiceOptions,
	metrics.NewMetrics,
	transcription.NewService,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(transcription.Recorder), new(*metrics.Metrics)),
)

// InitializeService builds the transcription pipeline without the HTTP layer
func InitializeService(cfg *config.ServiceConfig, keys *config.APIKeys) (*transcription.Service, func(), error) {
	wire.Build(serviceSet)
	return nil, nil, nil
}

// InitializeServer builds the HTTP server around the transcription pipeline
func InitializeServer(cfg *config.ServiceConfig, keys *config.APIKeys) (*server.Server, func(), error) {
	wire.Build(
		serviceSet,
		server.NewServer,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		wire.Bind(new(services.AudioProcessor), new(*transcription.Service)),
	)
	return nil, nil, nil
}

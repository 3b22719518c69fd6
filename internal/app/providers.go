package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"voice-transcriber/internal/app/api"
	"voice-transcriber/internal/app/api/provider"
	"voice-transcriber/internal/app/audio"
	"voice-transcriber/internal/app/logging"
	"voice-transcriber/internal/app/transcription"
	"voice-transcriber/internal/config"
)

// provideLogger builds the process logger; the cleanup flushes buffered entries
func provideLogger(cfg *config.ServiceConfig) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func provideTranscoder(cfg *config.ServiceConfig) audio.Transcoder {
	return audio.NewFFmpegTranscoder(cfg.Audio.FFmpegPath)
}

// provideTranscriber resolves the configured provider; it must have been registered
// by importing its package
func provideTranscriber(cfg *config.ServiceConfig, keys *config.APIKeys, logger *zap.Logger) (api.Transcriber, error) {
	if keys == nil {
		keys = &config.APIKeys{}
	}
	logger.Info("Selecting transcription provider",
		zap.String("provider", cfg.Provider.Name),
		zap.String("model", cfg.Provider.Model),
		zap.Strings("credentials", keys.Available()),
	)
	if warning := keys.FormatWarning(cfg.Provider.Name); warning != "" {
		logger.Warn("Unusual API key format", zap.String("provider", cfg.Provider.Name), zap.String("reason", warning))
	}
	return provider.New(cfg.Provider, keys)
}

func provideServiceOptions(cfg *config.ServiceConfig) (transcription.Options, error) {
	source, err := audio.LookupFormat(cfg.Audio.SourceFormat)
	if err != nil {
		return transcription.Options{}, err
	}
	target, err := audio.LookupFormat(cfg.Audio.TargetFormat)
	if err != nil {
		return transcription.Options{}, err
	}

	return transcription.Options{
		SourceFormat:   source,
		TargetFormat:   target,
		TempDir:        cfg.Audio.TempDir,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Provider:       cfg.Provider.Name,
	}, nil
}

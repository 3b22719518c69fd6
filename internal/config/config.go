package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "whisper-1"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// ServiceConfig represents the complete service configuration
type ServiceConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Audio    AudioConfig    `yaml:"audio"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig represents HTTP server settings
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"min=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"min=0"`
	Environment  string        `yaml:"environment" validate:"oneof=development production test"`

	// StrictStatusCodes maps domain failures to HTTP error statuses instead of 200
	StrictStatusCodes bool `yaml:"strict_status_codes"`

	// MaxUploadBytes caps the buffered upload; 0 disables the limit
	MaxUploadBytes int64 `yaml:"max_upload_bytes" validate:"min=0"`
}

// AudioConfig represents transcoding settings
type AudioConfig struct {
	SourceFormat string `yaml:"source_format" validate:"required,oneof=webm ogg mp3 wav flac"`
	TargetFormat string `yaml:"target_format" validate:"required,oneof=webm ogg mp3 wav flac"`
	FFmpegPath   string `yaml:"ffmpeg_path" validate:"required"`
	TempDir      string `yaml:"temp_dir"`
}

// ProviderConfig represents the transcription provider settings
type ProviderConfig struct {
	Name    string        `yaml:"name" validate:"required,oneof=openai gemini"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

// LogConfig represents logging settings
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is present.
// Provider.Model is left empty so Load can pick the default for the chosen provider.
func Default() *ServiceConfig {
	return &ServiceConfig{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        "8000",
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 120 * time.Second,
			Environment: "development",
		},
		Audio: AudioConfig{
			SourceFormat: "webm",
			TargetFormat: "mp3",
			FFmpegPath:   "ffmpeg",
		},
		Provider: ProviderConfig{
			Name: ProviderOpenAI,
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies TRANSCRIBER_*
// environment overrides and validates the result. A missing file is not an error.
func Load(path string) (*ServiceConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config YAML: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if cfg.Provider.Model == "" {
		cfg.Provider.Model = defaultModel(cfg.Provider.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks struct constraints on the configuration
func (c *ServiceConfig) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldError := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fieldError.Namespace(), fieldError.Tag()))
			}
			return errors.New(strings.Join(fields, "; "))
		}
		return err
	}
	return nil
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

func applyEnvOverrides(cfg *ServiceConfig) error {
	stringOverrides := map[string]*string{
		"TRANSCRIBER_HOST":          &cfg.Server.Host,
		"TRANSCRIBER_PORT":          &cfg.Server.Port,
		"TRANSCRIBER_ENV":           &cfg.Server.Environment,
		"TRANSCRIBER_SOURCE_FORMAT": &cfg.Audio.SourceFormat,
		"TRANSCRIBER_TARGET_FORMAT": &cfg.Audio.TargetFormat,
		"TRANSCRIBER_FFMPEG_PATH":   &cfg.Audio.FFmpegPath,
		"TRANSCRIBER_TEMP_DIR":      &cfg.Audio.TempDir,
		"TRANSCRIBER_PROVIDER":      &cfg.Provider.Name,
		"TRANSCRIBER_MODEL":         &cfg.Provider.Model,
		"TRANSCRIBER_BASE_URL":      &cfg.Provider.BaseURL,
		"TRANSCRIBER_LOG_LEVEL":     &cfg.Log.Level,
	}
	for key, target := range stringOverrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*target = strings.TrimSpace(value)
		}
	}

	if value, ok := os.LookupEnv("TRANSCRIBER_STRICT_STATUS_CODES"); ok && value != "" {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("TRANSCRIBER_STRICT_STATUS_CODES: %w", err)
		}
		cfg.Server.StrictStatusCodes = strict
	}

	if value, ok := os.LookupEnv("TRANSCRIBER_MAX_UPLOAD_BYTES"); ok && value != "" {
		limit, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("TRANSCRIBER_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Server.MaxUploadBytes = limit
	}

	if value, ok := os.LookupEnv("TRANSCRIBER_PROVIDER_TIMEOUT"); ok && value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("TRANSCRIBER_PROVIDER_TIMEOUT: %w", err)
		}
		cfg.Provider.Timeout = timeout
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds the provider credentials loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// envPaths are checked in order; the first existing file wins
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from a .env file if one exists.
// Variables already present in the process environment are not overwritten.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetAPIKeys reads provider credentials from the environment.
// Absent or unusual keys are accepted here: a bad credential surfaces on the first provider call.
func GetAPIKeys() *APIKeys {
	return &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}
}

// FormatWarning describes why the credential for provider does not look like a key
// issued by that vendor, or returns "" when it does or when no key is set.
// Callers log it and carry on.
func (k *APIKeys) FormatWarning(provider string) string {
	switch provider {
	case ProviderOpenAI:
		if k.OpenAI == "" {
			return ""
		}
		if !strings.HasPrefix(k.OpenAI, "sk-") {
			return "OPENAI_API_KEY does not start with 'sk-'"
		}
		if len(k.OpenAI) < 20 {
			return "OPENAI_API_KEY looks too short"
		}
	case ProviderGemini:
		if k.Gemini == "" {
			return ""
		}
		if !strings.HasPrefix(k.Gemini, "AIza") {
			return "GEMINI_API_KEY does not start with 'AIza'"
		}
		if len(k.Gemini) < 30 {
			return "GEMINI_API_KEY looks too short"
		}
	}
	return ""
}

// Available lists the providers that have a credential configured
func (k *APIKeys) Available() []string {
	var available []string
	if k.OpenAI != "" {
		available = append(available, ProviderOpenAI)
	}
	if k.Gemini != "" {
		available = append(available, ProviderGemini)
	}
	return available
}

// InitializeKeys loads .env and reads the API keys.
// This is the main entry point for credential loading at process start.
func InitializeKeys() (*APIKeys, string, error) {
	loadedFrom, err := LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load environment: %w", err)
	}

	return GetAPIKeys(), loadedFrom, nil
}

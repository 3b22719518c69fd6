package provider

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"voice-transcriber/internal/app/api"
	"voice-transcriber/internal/config"
)

// Settings carries what a provider needs to build its client
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ProviderCreator builds a transcriber from settings
type ProviderCreator func(settings Settings) (api.Transcriber, error)

var (
	registryMutex    sync.RWMutex
	providerRegistry = make(map[string]ProviderCreator)
)

// RegisterProvider registers a creator for a provider type.
// Provider packages call this from init.
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("provider type %s not registered (registered: %v)", providerType, listLocked())
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types in sorted order
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return listLocked()
}

func listLocked() []string {
	providers := lo.Keys(providerRegistry)
	slices.Sort(providers)
	return providers
}

// New builds the transcriber selected by cfg, picking the matching credential from keys.
// Credentials are not checked for presence here; a missing key surfaces on the first call.
func New(cfg config.ProviderConfig, keys *config.APIKeys) (api.Transcriber, error) {
	creator, err := GetProviderCreator(cfg.Name)
	if err != nil {
		return nil, err
	}

	settings := Settings{
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}
	if keys != nil {
		switch cfg.Name {
		case config.ProviderOpenAI:
			settings.APIKey = keys.OpenAI
		case config.ProviderGemini:
			settings.APIKey = keys.Gemini
		}
	}

	transcriber, err := creator(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Name, err)
	}
	return transcriber, nil
}

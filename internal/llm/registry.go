package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProviderFactory builds a provider from its own environment configuration.
type ProviderFactory func() (Provider, error)

var (
	registryMu sync.RWMutex
	factories  = map[string]ProviderFactory{}
)

// RegisterProvider is called from provider packages' init functions.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[strings.ToLower(name)] = factory
}

// NewProvider builds the provider registered under name (case-insensitive).
func NewProvider(name string) (Provider, error) {
	registryMu.RLock()
	factory, ok := factories[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported AI provider %q", name)
	}

	provider, err := factory()
	if err != nil {
		return nil, fmt.Errorf("initialize %s provider: %w", name, err)
	}
	return provider, nil
}

// RegisteredProviders lists provider names in sorted order.
func RegisteredProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

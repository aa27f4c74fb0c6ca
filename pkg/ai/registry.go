package ai

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"orlab/pkg/config"
)

// ProviderType names a transport for the chat-completions API, as set in
// OPENROUTER_TRANSPORT.
type ProviderType string

const (
	ProviderHTTP   ProviderType = "http"
	ProviderOpenAI ProviderType = "openai"
)

// ProviderConfig is what a transport factory is built from.
type ProviderConfig struct {
	Type   ProviderType
	Config config.Config
}

// ProviderFactory builds a Provider for one transport.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// ProviderInfo describes a registered transport for help and version output.
type ProviderInfo struct {
	Type        ProviderType
	Name        string
	Description string
}

type registration struct {
	info    ProviderInfo
	factory ProviderFactory
}

// Registry maps transport names to factories. Transports register
// themselves from init.
type Registry struct {
	mu      sync.RWMutex
	entries map[ProviderType]registration
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[ProviderType]registration)}
}

// Register adds or replaces a transport.
func (r *Registry) Register(info ProviderInfo, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[info.Type] = registration{info: info, factory: factory}
}

// GetProvider builds the transport named by cfg.Type. An unknown name is an
// error that lists the registered transports.
func (r *Registry) GetProvider(cfg ProviderConfig) (Provider, error) {
	r.mu.RLock()
	entry, ok := r.entries[cfg.Type]
	r.mu.RUnlock()

	if !ok || entry.factory == nil {
		return nil, fmt.Errorf("unknown transport %q (available: %s)", cfg.Type, strings.Join(r.names(), ", "))
	}
	return entry.factory(cfg)
}

// ListProviders returns the registered transports sorted by name.
func (r *Registry) ListProviders() []ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]ProviderInfo, 0, len(r.entries))
	for _, entry := range r.entries {
		providers = append(providers, entry.info)
	}
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Type < providers[j].Type
	})
	return providers
}

func (r *Registry) names() []string {
	list := r.ListProviders()
	names := make([]string, len(list))
	for i, info := range list {
		names[i] = string(info.Type)
	}
	return names
}

// DefaultRegistry holds the transports linked into the binary.
var DefaultRegistry = NewRegistry()

// RegisterProvider registers a transport with the default registry.
func RegisterProvider(info ProviderInfo, factory ProviderFactory) {
	DefaultRegistry.Register(info, factory)
}

// ListProviders returns the transports of the default registry.
func ListProviders() []ProviderInfo {
	return DefaultRegistry.ListProviders()
}

// GetProviderFromConfig builds the transport chosen by
// OPENROUTER_TRANSPORT. An empty value means http.
func GetProviderFromConfig(cfg config.Config) (Provider, error) {
	providerType := ProviderType(strings.ToLower(strings.TrimSpace(cfg.OpenRouter.Transport)))
	if providerType == "" {
		providerType = ProviderHTTP
	}

	return DefaultRegistry.GetProvider(ProviderConfig{
		Type:   providerType,
		Config: cfg,
	})
}

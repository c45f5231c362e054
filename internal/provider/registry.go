package provider

import (
	"fmt"
	"log/slog"
	"sort"

	"NewsLens/internal/config"
	"NewsLens/internal/ports"
)

// Factory builds a news source from configuration.
type Factory func(cfg config.SourceConfig, logger *slog.Logger) (ports.NewsSource, error)

// Registry keeps a mapping from provider names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces a provider factory.
func (r *Registry) Register(name string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[name] = factory
}

// Names lists registered providers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves cfg.Provider and constructs the source.
func (r *Registry) Build(cfg config.SourceConfig, logger *slog.Logger) (ports.NewsSource, error) {
	factory, ok := r.factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("provider %s is not registered", cfg.Provider)
	}

	source, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build provider %s: %w", cfg.Provider, err)
	}
	return source, nil
}

package provider

import (
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

type Registry struct {
	providers map[entities.ProviderKind]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[entities.ProviderKind]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Kind()] = p
	}
	return r
}

// Resolve picks the provider for cfg.Kind and validates cfg against it.
func (r *Registry) Resolve(cfg entities.GatewayConfig) (Provider, error) {
	p, ok := r.providers[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported provider kind %q", entities.ErrValidation, cfg.Kind)
	}
	if err := p.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

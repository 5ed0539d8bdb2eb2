// Package memory provides in-process repository implementations used for
// ephemeral sessions and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/domain/repository"
)

// DisplaySettingsRepository keeps display settings in a map. Values are
// cloned on the way in and out so callers never share state with the store.
type DisplaySettingsRepository struct {
	mu      sync.RWMutex
	configs map[string]*entity.DomainConfig
}

var _ repository.DisplaySettingsRepository = (*DisplaySettingsRepository)(nil)

// NewDisplaySettingsRepository creates an empty in-memory repository.
func NewDisplaySettingsRepository() *DisplaySettingsRepository {
	return &DisplaySettingsRepository{configs: make(map[string]*entity.DomainConfig)}
}

func (r *DisplaySettingsRepository) Get(_ context.Context, domain string) (*entity.DomainConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configs[domain].Clone(), nil
}

func (r *DisplaySettingsRepository) Save(_ context.Context, cfg *entity.DomainConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.IsEmpty() {
		delete(r.configs, cfg.Domain)
		return nil
	}
	r.configs[cfg.Domain] = cfg.Clone()
	return nil
}

func (r *DisplaySettingsRepository) Delete(_ context.Context, domain string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.configs, domain)
	return nil
}

func (r *DisplaySettingsRepository) GetAll(_ context.Context) ([]*entity.DomainConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.DomainConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		out = append(out, cfg.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out, nil
}

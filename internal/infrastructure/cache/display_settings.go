package cache

import (
	"context"
	"time"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/domain/repository"
)

// cachedConfig is a stored config, or a miss when cfg is nil, tagged with the
// store version it was read at.
type cachedConfig struct {
	cfg      *entity.DomainConfig
	version  int64
	storedAt time.Time
}

// DisplaySettingsRepository serves Get from memory for ttl. Every page load
// reads the settings of its domain, and most domains have none, so misses
// are cached too. Writes go through and refresh the entry.
//
// When the store implements repository.DisplaySettingsVersioner, an entry is
// only served while the store version is unchanged, so writes made by another
// process are seen on the next Get.
type DisplaySettingsRepository struct {
	repo  repository.DisplaySettingsRepository
	cache port.Cache[string, cachedConfig]
	ttl   time.Duration
	now   func() time.Time
}

// NewDisplaySettingsRepository wraps repo with an LRU of the given size.
// A size of 0 returns repo unchanged.
func NewDisplaySettingsRepository(repo repository.DisplaySettingsRepository, size int, ttl time.Duration) repository.DisplaySettingsRepository {
	if size <= 0 {
		return repo
	}
	return &DisplaySettingsRepository{
		repo:  repo,
		cache: NewLRU[string, cachedConfig](size),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a copy of the cached config, loading it on a miss or expiry.
func (r *DisplaySettingsRepository) Get(ctx context.Context, domain string) (*entity.DomainConfig, error) {
	version, err := r.version(ctx)
	if err != nil {
		// Unknown version: nothing cached can be trusted, read through.
		r.cache.Remove(domain)
		return r.repo.Get(ctx, domain)
	}
	if entry, ok := r.cache.Get(domain); ok && entry.version == version && r.now().Sub(entry.storedAt) < r.ttl {
		return entry.cfg.Clone(), nil
	}

	cfg, err := r.repo.Get(ctx, domain)
	if err != nil {
		return nil, err
	}
	r.cache.Set(domain, cachedConfig{cfg: cfg.Clone(), version: version, storedAt: r.now()})
	return cfg, nil
}

// Save writes through and caches the saved config.
func (r *DisplaySettingsRepository) Save(ctx context.Context, cfg *entity.DomainConfig) error {
	if err := r.repo.Save(ctx, cfg); err != nil {
		r.cache.Remove(cfg.Domain)
		return err
	}
	r.store(ctx, cfg.Domain, cfg.Clone())
	return nil
}

// Delete removes the domain and caches the miss.
func (r *DisplaySettingsRepository) Delete(ctx context.Context, domain string) error {
	if err := r.repo.Delete(ctx, domain); err != nil {
		r.cache.Remove(domain)
		return err
	}
	r.store(ctx, domain, nil)
	return nil
}

// store caches cfg at the version following a write of our own.
func (r *DisplaySettingsRepository) store(ctx context.Context, domain string, cfg *entity.DomainConfig) {
	version, err := r.version(ctx)
	if err != nil {
		r.cache.Remove(domain)
		return
	}
	r.cache.Set(domain, cachedConfig{cfg: cfg, version: version, storedAt: r.now()})
}

func (r *DisplaySettingsRepository) version(ctx context.Context) (int64, error) {
	if v, ok := r.repo.(repository.DisplaySettingsVersioner); ok {
		return v.Version(ctx)
	}
	return 0, nil
}

// GetAll always reads the underlying store.
func (r *DisplaySettingsRepository) GetAll(ctx context.Context) ([]*entity.DomainConfig, error) {
	return r.repo.GetAll(ctx)
}

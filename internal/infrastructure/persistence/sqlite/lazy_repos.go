// Package sqlite stores display settings in a SQLite file.
package sqlite

import (
	"context"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/domain/repository"
)

// lazyDisplaySettingsRepo resolves its connection through the provider on
// every call, so nothing is opened until settings are first touched.
type lazyDisplaySettingsRepo struct {
	provider port.DatabaseProvider
}

var _ repository.DisplaySettingsVersioner = lazyDisplaySettingsRepo{}

func NewLazyDisplaySettingsRepository(provider port.DatabaseProvider) repository.DisplaySettingsRepository {
	return lazyDisplaySettingsRepo{provider: provider}
}

func (r lazyDisplaySettingsRepo) repo(ctx context.Context) (*displaySettingsRepo, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	return &displaySettingsRepo{db: db}, nil
}

func (r lazyDisplaySettingsRepo) Version(ctx context.Context) (int64, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Version(ctx)
}

func (r lazyDisplaySettingsRepo) Get(ctx context.Context, domain string) (*entity.DomainConfig, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, domain)
}

func (r lazyDisplaySettingsRepo) Save(ctx context.Context, cfg *entity.DomainConfig) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, cfg)
}

func (r lazyDisplaySettingsRepo) Delete(ctx context.Context, domain string) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, domain)
}

func (r lazyDisplaySettingsRepo) GetAll(ctx context.Context) ([]*entity.DomainConfig, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAll(ctx)
}

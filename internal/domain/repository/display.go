package repository

import (
	"context"

	"github.com/bnema/sitestyle/internal/domain/entity"
)

// DisplaySettingsRepository defines operations for per-domain display settings persistence.
type DisplaySettingsRepository interface {
	// Get retrieves the config for a domain.
	// Returns nil if nothing is stored for the domain.
	Get(ctx context.Context, domain string) (*entity.DomainConfig, error)

	// Save writes the whole config for its domain, replacing any stored row.
	Save(ctx context.Context, cfg *entity.DomainConfig) error

	// Delete removes the stored config for a domain. Deleting an absent domain is not an error.
	Delete(ctx context.Context, domain string) error

	// GetAll retrieves every stored config, ordered by domain.
	GetAll(ctx context.Context) ([]*entity.DomainConfig, error)
}

// DisplaySettingsVersioner is implemented by stores shared between processes.
// Version returns a counter that changes on every committed write, whichever
// process made it, so readers can tell when their copies went stale.
type DisplaySettingsVersioner interface {
	Version(ctx context.Context) (int64, error)
}

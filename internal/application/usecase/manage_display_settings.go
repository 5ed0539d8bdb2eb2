// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/domain/repository"
	"github.com/bnema/sitestyle/internal/logging"
)

// ManageDisplaySettingsUseCase is the settings store: per-domain display
// preferences keyed by hostname. Field updates are read-modify-write and are
// serialized so two concurrent writers never drop each other's field.
type ManageDisplaySettingsUseCase struct {
	repo repository.DisplaySettingsRepository
	mu   sync.Mutex
}

// NewManageDisplaySettingsUseCase creates a new settings store.
func NewManageDisplaySettingsUseCase(repo repository.DisplaySettingsRepository) *ManageDisplaySettingsUseCase {
	return &ManageDisplaySettingsUseCase{repo: repo}
}

// Get returns the config for a domain. An absent domain yields an empty config.
func (uc *ManageDisplaySettingsUseCase) Get(ctx context.Context, domain string) (*entity.DomainConfig, error) {
	domain, err := normalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Str("domain", domain).Msg("getting display settings")

	cfg, err := uc.repo.Get(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get display settings: %w", err)
	}
	if cfg == nil {
		cfg = entity.NewDomainConfig(domain)
	}
	return cfg, nil
}

// SetField parses raw input for one field and stores it, leaving the other
// fields of the domain untouched. Sentinel input clears the field.
func (uc *ManageDisplaySettingsUseCase) SetField(
	ctx context.Context, domain string, field entity.SettingField, raw string,
) (*entity.DomainConfig, error) {
	return uc.update(ctx, domain, func(cfg *entity.DomainConfig) error {
		return cfg.SetRaw(field, raw)
	})
}

// SetFont stores the font family for a domain.
func (uc *ManageDisplaySettingsUseCase) SetFont(ctx context.Context, domain, font string) (*entity.DomainConfig, error) {
	return uc.update(ctx, domain, func(cfg *entity.DomainConfig) error {
		cfg.SetFont(font)
		return nil
	})
}

// SetFontSizeDelta stores the clamped font-size delta for a domain.
func (uc *ManageDisplaySettingsUseCase) SetFontSizeDelta(ctx context.Context, domain string, delta int) (*entity.DomainConfig, error) {
	return uc.update(ctx, domain, func(cfg *entity.DomainConfig) error {
		cfg.SetFontSizeDelta(delta)
		return nil
	})
}

// SetScaleFactor stores the scale factor for a domain.
func (uc *ManageDisplaySettingsUseCase) SetScaleFactor(ctx context.Context, domain string, factor float64) (*entity.DomainConfig, error) {
	return uc.update(ctx, domain, func(cfg *entity.DomainConfig) error {
		return cfg.SetScaleFactor(factor)
	})
}

// ClearField removes one field. When no field remains the domain entry is
// deleted. Clearing an absent field or domain is a no-op.
func (uc *ManageDisplaySettingsUseCase) ClearField(
	ctx context.Context, domain string, field entity.SettingField,
) (*entity.DomainConfig, error) {
	return uc.update(ctx, domain, func(cfg *entity.DomainConfig) error {
		return cfg.Clear(field)
	})
}

// ClearDomain removes every field of a domain.
func (uc *ManageDisplaySettingsUseCase) ClearDomain(ctx context.Context, domain string) error {
	domain, err := normalizeDomain(domain)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.repo.Delete(ctx, domain); err != nil {
		return fmt.Errorf("failed to clear display settings: %w", err)
	}
	logging.FromContext(ctx).Info().Str("domain", domain).Msg("display settings cleared")
	return nil
}

// ListAll returns every stored domain with at least one field, ordered by domain.
func (uc *ManageDisplaySettingsUseCase) ListAll(ctx context.Context) ([]*entity.DomainConfig, error) {
	all, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list display settings: %w", err)
	}
	out := make([]*entity.DomainConfig, 0, len(all))
	for _, cfg := range all {
		if !cfg.IsEmpty() {
			out = append(out, cfg)
		}
	}
	return out, nil
}

// Summary renders every stored setting as one line per field.
func (uc *ManageDisplaySettingsUseCase) Summary(ctx context.Context) ([]string, error) {
	all, err := uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, cfg := range all {
		lines = append(lines, cfg.SummaryLines()...)
	}
	return lines, nil
}

func (uc *ManageDisplaySettingsUseCase) update(
	ctx context.Context, domain string, mutate func(*entity.DomainConfig) error,
) (*entity.DomainConfig, error) {
	domain, err := normalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	cfg, err := uc.repo.Get(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get display settings: %w", err)
	}
	existed := cfg != nil
	if cfg == nil {
		cfg = entity.NewDomainConfig(domain)
	}
	before := cfg.Clone()

	if err := mutate(cfg); err != nil {
		return nil, err
	}

	switch {
	case cfg.IsEmpty() && !existed:
		log.Debug().Str("domain", domain).Msg("nothing to store")
		return cfg, nil
	case cfg.IsEmpty():
		if err := uc.repo.Delete(ctx, domain); err != nil {
			return nil, fmt.Errorf("failed to delete display settings: %w", err)
		}
		log.Info().Str("domain", domain).Msg("display settings removed")
		return cfg, nil
	}

	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save display settings: %w", err)
	}

	log.Info().
		Str("domain", domain).
		Strs("before", before.SummaryLines()).
		Strs("after", cfg.SummaryLines()).
		Msg("display settings saved")
	return cfg, nil
}

func normalizeDomain(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return "", fmt.Errorf("%w: empty domain", entity.ErrInvalidDomain)
	}
	if strings.ContainsAny(d, "/ ") {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidDomain, domain)
	}
	return d, nil
}

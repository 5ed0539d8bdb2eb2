package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/domain/repository"
	"github.com/bnema/sitestyle/internal/logging"
)

const (
	getDisplaySettingsQuery = `SELECT domain, font, font_size_delta, scale_factor, updated_at
FROM display_settings WHERE domain = ?`

	listDisplaySettingsQuery = `SELECT domain, font, font_size_delta, scale_factor, updated_at
FROM display_settings ORDER BY domain`

	upsertDisplaySettingsQuery = `INSERT INTO display_settings (domain, font, font_size_delta, scale_factor, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(domain) DO UPDATE SET
	font = excluded.font,
	font_size_delta = excluded.font_size_delta,
	scale_factor = excluded.scale_factor,
	updated_at = excluded.updated_at`

	deleteDisplaySettingsQuery = `DELETE FROM display_settings WHERE domain = ?`

	// Bumped by triggers on every write to display_settings.
	settingsVersionQuery = `SELECT version FROM display_settings_version WHERE id = 1`
)

type displaySettingsRepo struct {
	db *sql.DB
}

// NewDisplaySettingsRepository creates a new SQLite-backed display settings repository.
func NewDisplaySettingsRepository(db *sql.DB) repository.DisplaySettingsRepository {
	return &displaySettingsRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *displaySettingsRepo) Get(ctx context.Context, domain string) (*entity.DomainConfig, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("domain", domain).Msg("getting display settings")

	cfg, err := scanDomainConfig(r.db.QueryRowContext(ctx, getDisplaySettingsQuery, domain))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save upserts the row for cfg.Domain. An empty config removes the row so
// the table never holds a domain without settings.
func (r *displaySettingsRepo) Save(ctx context.Context, cfg *entity.DomainConfig) error {
	log := logging.FromContext(ctx)
	if cfg.IsEmpty() {
		return r.Delete(ctx, cfg.Domain)
	}
	log.Debug().Str("domain", cfg.Domain).Msg("saving display settings")

	updatedAt := cfg.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	var (
		font  sql.NullString
		delta sql.NullInt64
		scale sql.NullFloat64
	)
	if cfg.Font != nil {
		font = sql.NullString{String: *cfg.Font, Valid: true}
	}
	if cfg.FontSizeDelta != nil {
		delta = sql.NullInt64{Int64: int64(*cfg.FontSizeDelta), Valid: true}
	}
	if cfg.ScaleFactor != nil {
		scale = sql.NullFloat64{Float64: *cfg.ScaleFactor, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, upsertDisplaySettingsQuery,
		cfg.Domain, font, delta, scale, updatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("upsert display settings: %w", err)
	}
	return nil
}

func (r *displaySettingsRepo) Delete(ctx context.Context, domain string) error {
	if _, err := r.db.ExecContext(ctx, deleteDisplaySettingsQuery, domain); err != nil {
		return fmt.Errorf("delete display settings: %w", err)
	}
	return nil
}

// Version implements repository.DisplaySettingsVersioner.
func (r *displaySettingsRepo) Version(ctx context.Context) (int64, error) {
	var version int64
	if err := r.db.QueryRowContext(ctx, settingsVersionQuery).Scan(&version); err != nil {
		return 0, fmt.Errorf("read settings version: %w", err)
	}
	return version, nil
}

func (r *displaySettingsRepo) GetAll(ctx context.Context) ([]*entity.DomainConfig, error) {
	rows, err := r.db.QueryContext(ctx, listDisplaySettingsQuery)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var configs []*entity.DomainConfig
	for rows.Next() {
		cfg, err := scanDomainConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func scanDomainConfig(row rowScanner) (*entity.DomainConfig, error) {
	var (
		domain    string
		font      sql.NullString
		delta     sql.NullInt64
		scale     sql.NullFloat64
		updatedAt int64
	)
	if err := row.Scan(&domain, &font, &delta, &scale, &updatedAt); err != nil {
		return nil, err
	}

	cfg := &entity.DomainConfig{
		Domain:    domain,
		UpdatedAt: time.UnixMilli(updatedAt),
	}
	if font.Valid {
		v := font.String
		cfg.Font = &v
	}
	if delta.Valid {
		v := int(delta.Int64)
		cfg.FontSizeDelta = &v
	}
	if scale.Valid {
		v := scale.Float64
		cfg.ScaleFactor = &v
	}
	return cfg, nil
}

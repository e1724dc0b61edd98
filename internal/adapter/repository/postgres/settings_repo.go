package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tctpro/clubledger/internal/domain"
)

// SettingsRepository implements usecase.SettingsRepository.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get retrieves a setting by key.
func (r *SettingsRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT key, value, updated_by, updated_at FROM app_settings WHERE key = $1`

	var setting domain.Setting
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&setting.Key,
		&setting.Value,
		&setting.UpdatedBy,
		&setting.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// Upsert inserts or replaces a setting.
func (r *SettingsRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	query := `
		INSERT INTO app_settings (key, value, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		setting.Key,
		setting.Value,
		setting.UpdatedBy,
		setting.UpdatedAt,
	)

	return err
}

// List retrieves all settings.
func (r *SettingsRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	query := `SELECT key, value, updated_by, updated_at FROM app_settings ORDER BY key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var setting domain.Setting
		err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt)
		if err != nil {
			return nil, err
		}
		settings = append(settings, &setting)
	}

	return settings, rows.Err()
}

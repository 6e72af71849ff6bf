// Package settings_repo provides the PostgreSQL implementation of the settings store.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/apperror"
	"treefnio/internal/domain/settings"
	"treefnio/internal/infrastructure/storage/postgres"
)

const settingsTable = "app_settings"

// SettingsRepo implements settings.Repository.
type SettingsRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txm *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SettingsRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Get retrieves a setting by key.
func (r *SettingsRepo) Get(ctx context.Context, key string) (*settings.Setting, error) {
	q := r.builder.
		Select("key", "value", "version", "updated_at", "updated_by").
		From(settingsTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var setting settings.Setting
	if err := pgxscan.Get(ctx, r.querier(ctx), &setting, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("setting", key)
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}

	return &setting, nil
}

// List retrieves all settings ordered by key.
func (r *SettingsRepo) List(ctx context.Context) ([]*settings.Setting, error) {
	q := r.builder.
		Select("key", "value", "version", "updated_at", "updated_by").
		From(settingsTable).
		OrderBy("key")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*settings.Setting
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	return items, nil
}

// Upsert inserts or replaces a setting, bumping its version.
// The stored version wins over whatever the caller passed in.
func (r *SettingsRepo) Upsert(ctx context.Context, setting *settings.Setting) error {
	sql := `
		INSERT INTO app_settings (key, value, version, updated_at, updated_by)
		VALUES ($1, $2, 1, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			version = app_settings.version + 1,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		RETURNING version
	`

	err := r.querier(ctx).
		QueryRow(ctx, sql, setting.Key, setting.Value, setting.UpdatedAt, setting.UpdatedBy).
		Scan(&setting.Version)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}

	return nil
}

// Delete removes a setting.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	q := r.builder.
		Delete(settingsTable).
		Where(squirrel.Eq{"key": key})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("setting", key)
	}

	return nil
}

var _ settings.Repository = (*SettingsRepo)(nil)

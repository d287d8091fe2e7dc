package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"launchpad/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	launchSettingsRowID = 1

	upsertSettingsSQL = `
		INSERT INTO launch_settings (id, target, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			target=excluded.target,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT id, target, updated_at
		FROM launch_settings WHERE id=?
	`
)

// Save upserts the single launch_settings row. Times are stored in UTC.
func (r *SettingsSQLite) Save(ctx context.Context, s models.LaunchSettings) error {
	if s.Target.IsZero() {
		return errors.New("save launch settings: target is required")
	}

	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	} else {
		updatedAt = updatedAt.UTC()
	}

	if _, err := r.db.ExecContext(ctx, upsertSettingsSQL,
		launchSettingsRowID,
		s.Target.UTC(),
		updatedAt,
	); err != nil {
		return fmt.Errorf("save launch settings: %w", err)
	}
	return nil
}

// Load returns a zero value (ID 0) when nothing has been saved.
func (r *SettingsSQLite) Load(ctx context.Context) (models.LaunchSettings, error) {
	var s models.LaunchSettings
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, launchSettingsRowID).Scan(&s.ID, &s.Target, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LaunchSettings{}, nil
		}
		return models.LaunchSettings{}, fmt.Errorf("load launch settings: %w", err)
	}
	s.Target = s.Target.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

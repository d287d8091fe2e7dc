package repository

import (
	"context"
	"database/sql"
	"time"

	"launchpad/internal/models"
)

// Authorization stores admin accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SubscriberRepo stores captured emails.
type SubscriberRepo interface {
	// Add returns false when the email is already stored.
	Add(ctx context.Context, s models.Subscriber) (bool, error)
	Exists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type SettingsRepo interface {
	Save(ctx context.Context, s models.LaunchSettings) error
	Load(ctx context.Context) (models.LaunchSettings, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.LaunchEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.LaunchEvent, error)
}

type Repository struct {
	Subscribers SubscriberRepo
	Settings    SettingsRepo
	Events      EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Subscribers: NewSubscriberSQLite(db),
		Settings:    NewSettingsSQLite(db),
		Events:      NewEventSQLite(db),
		Auth:        NewAdminSQLite(db),
	}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"launchpad/internal/models"
)

type SubscriberSQLite struct {
	db *sql.DB
}

func NewSubscriberSQLite(db *sql.DB) *SubscriberSQLite {
	return &SubscriberSQLite{db: db}
}

var _ SubscriberRepo = (*SubscriberSQLite)(nil)

const (
	insertSubscriberSQL = `
		INSERT INTO subscribers (email, source, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`
	existsSubscriberSQL = `SELECT COUNT(1) FROM subscribers WHERE email = ?`
	countSubscribersSQL = `SELECT COUNT(1) FROM subscribers`

	sourceLocal = "LOCAL"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add stores the subscriber unless the email is already present.
func (r *SubscriberSQLite) Add(ctx context.Context, s models.Subscriber) (bool, error) {
	email := normalizeEmail(s.Email)
	if email == "" {
		return false, fmt.Errorf("insert subscriber: empty email")
	}
	source := strings.ToUpper(strings.TrimSpace(s.Source))
	if source == "" {
		source = sourceLocal
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertSubscriberSQL, email, source, createdAt)
	if err != nil {
		return false, fmt.Errorf("insert subscriber %q: %w", email, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for subscriber %q: %w", email, err)
	}
	return affected > 0, nil
}

// Exists reports whether the normalized email is stored.
func (r *SubscriberSQLite) Exists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, existsSubscriberSQL, normalizeEmail(email)).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup subscriber: %w", err)
	}
	return n > 0, nil
}

func (r *SubscriberSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countSubscribersSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}

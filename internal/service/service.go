package service

import (
	"context"
	"time"

	"launchpad/internal/countdown"
	"launchpad/internal/logger"
	"launchpad/internal/models"
	"launchpad/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

// Countdown exposes the process-wide launch countdown.
type Countdown interface {
	Snapshot() countdown.Snapshot
	Target() time.Time
	SetTarget(ctx context.Context, raw any) (countdown.Snapshot, error)
	Subscribe(buffer int) <-chan countdown.Snapshot
	Unsubscribe(sub <-chan countdown.Snapshot)
	Restore(ctx context.Context) error
	// Run ticks the countdown until ctx is canceled.
	Run(ctx context.Context)
}

// Subscription captures launch notification emails.
type Subscription interface {
	Submit(ctx context.Context, email string) (SubscriptionResult, error)
	Count(ctx context.Context) (int, error)
	IsSubscribed(ctx context.Context, email string) (bool, error)
}

// EventLog exposes the append-only launch audit log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.LaunchEvent, error)
}

type Service struct {
	Countdown
	Subscription
	EventLog
	Authorization
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Engine *countdown.Engine
	Log    *logger.Logger
	// Sheets is nil when no spreadsheet webhook is configured.
	Sheets SheetsClient
	Auth   AuthParams
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		Countdown:     NewCountdownService(deps.Engine, repos.Settings, repos.Events, log.Named("countdown")),
		Subscription:  NewSubscriptionService(repos.Subscribers, repos.Events, deps.Sheets, log.Named("subscription")),
		EventLog:      NewEventLogService(repos.Events),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}

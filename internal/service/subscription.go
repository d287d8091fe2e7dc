package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"launchpad/internal/logger"
	"launchpad/internal/models"
	"launchpad/internal/repository"
)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrAlreadySubscribed = errors.New("already subscribed")
)

const (
	msgInvalidEmail      = "Please enter a valid email address"
	msgAlreadySubscribed = "This email is already subscribed"
	msgSubscribed        = "Successfully subscribed!"
	msgSubscribeFailed   = "Something went wrong. Please try again."

	sourceLocal  = "LOCAL"
	sourceSheets = "SHEETS"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SubscriptionService struct {
	subscribers repository.SubscriberRepo
	events      repository.EventRepo
	sheets      SheetsClient
	log         *logger.Logger
	now         func() time.Time
}

// NewSubscriptionService stores locally only when sheets is nil.
func NewSubscriptionService(subscribers repository.SubscriberRepo, events repository.EventRepo, sheets SheetsClient, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		subscribers: subscribers,
		events:      events,
		sheets:      sheets,
		log:         log,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Submit validates and records an email. The returned result is always
// meaningful to show to the user; err classifies failures for callers that
// need a status code.
func (s *SubscriptionService) Submit(ctx context.Context, email string) (SubscriptionResult, error) {
	if email == "" || !emailPattern.MatchString(email) {
		return SubscriptionResult{Message: msgInvalidEmail}, ErrInvalidEmail
	}
	email = normalizeEmail(email)

	if s.sheets != nil {
		err := s.sheets.Append(ctx, email, s.now())
		if err == nil {
			// Local copy is a backup; a duplicate here is not an error.
			added, lerr := s.subscribers.Add(ctx, models.Subscriber{Email: email, Source: sourceSheets})
			if lerr != nil {
				s.log.Errorw("subscribe_backup_failed", "err", lerr)
			} else if added {
				s.recordSubscribed(ctx, email, sourceSheets)
			}
			return SubscriptionResult{Success: true, Message: msgSubscribed}, nil
		}
		s.log.Errorw("sheets_submit_failed", "err", err)
	}

	added, err := s.subscribers.Add(ctx, models.Subscriber{Email: email, Source: sourceLocal})
	if err != nil {
		s.log.Errorw("subscribe_failed", "err", err)
		return SubscriptionResult{Message: msgSubscribeFailed}, err
	}
	if !added {
		return SubscriptionResult{Message: msgAlreadySubscribed}, ErrAlreadySubscribed
	}
	s.recordSubscribed(ctx, email, sourceLocal)
	return SubscriptionResult{Success: true, Message: msgSubscribed}, nil
}

func (s *SubscriptionService) Count(ctx context.Context) (int, error) {
	return s.subscribers.Count(ctx)
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	return s.subscribers.Exists(ctx, email)
}

func (s *SubscriptionService) recordSubscribed(ctx context.Context, email, source string) {
	s.log.Infow("subscribed", "source", source)
	err := s.events.Append(ctx, models.LaunchEvent{
		Type:        models.EventSubscribed,
		Description: "new subscriber",
		Metadata:    map[string]any{"email": email, "source": source},
	})
	if err != nil {
		s.log.Errorw("event_append_failed", "type", models.EventSubscribed, "err", err)
	}
}

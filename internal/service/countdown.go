package service

import (
	"context"
	"fmt"
	"time"

	"launchpad/internal/countdown"
	"launchpad/internal/logger"
	"launchpad/internal/models"
	"launchpad/internal/repository"
)

const eventWriteTimeout = 5 * time.Second

// CountdownService binds the engine to persisted settings and the event log.
type CountdownService struct {
	engine   *countdown.Engine
	settings repository.SettingsRepo
	events   repository.EventRepo
	log      *logger.Logger
}

func NewCountdownService(engine *countdown.Engine, settings repository.SettingsRepo, events repository.EventRepo, log *logger.Logger) *CountdownService {
	s := &CountdownService{engine: engine, settings: settings, events: events, log: log}
	engine.SetOnComplete(s.onLaunch)
	if engine.Last().IsOver {
		s.onLaunch()
	}
	return s
}

func (s *CountdownService) Snapshot() countdown.Snapshot { return s.engine.Snapshot() }

func (s *CountdownService) Target() time.Time { return s.engine.Target() }

func (s *CountdownService) Subscribe(buffer int) <-chan countdown.Snapshot {
	return s.engine.Subscribe(buffer)
}

func (s *CountdownService) Unsubscribe(sub <-chan countdown.Snapshot) { s.engine.Unsubscribe(sub) }

// Restore switches the engine to the persisted target, if any. A stored
// target takes precedence over the configured one.
func (s *CountdownService) Restore(ctx context.Context) error {
	saved, err := s.settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore launch target: %w", err)
	}
	if saved.ID == 0 || saved.Target.Equal(s.engine.Target()) {
		return nil
	}
	if err := s.engine.SetTarget(saved.Target); err != nil {
		return fmt.Errorf("restore launch target: %w", err)
	}
	s.log.Infow("target_restored", "target", saved.Target.Format(time.RFC3339))
	return nil
}

// SetTarget resolves raw, persists it and then restarts the countdown toward
// it. A malformed raw yields a *countdown.ConfigError; neither that nor a
// failed save touches the running countdown.
func (s *CountdownService) SetTarget(ctx context.Context, raw any) (countdown.Snapshot, error) {
	previous := s.engine.Target()
	target, err := s.engine.Resolve(raw)
	if err != nil {
		return countdown.Snapshot{}, err
	}

	if err := s.settings.Save(ctx, models.LaunchSettings{Target: target}); err != nil {
		return s.engine.Last(), fmt.Errorf("persist launch target: %w", err)
	}
	if err := s.engine.SetTarget(target); err != nil {
		return countdown.Snapshot{}, err
	}

	s.appendEvent(ctx, models.LaunchEvent{
		Type:        models.EventTargetChanged,
		Description: "launch target changed",
		Metadata: map[string]any{
			"previous": previous.UTC().Format(time.RFC3339),
			"target":   target.UTC().Format(time.RFC3339),
		},
	})
	s.log.Infow("target_changed", "previous", previous.Format(time.RFC3339), "target", target.Format(time.RFC3339))
	return s.engine.Last(), nil
}

// Run starts the engine and stops it once ctx is canceled.
func (s *CountdownService) Run(ctx context.Context) {
	s.engine.Start()
	<-ctx.Done()
	s.engine.Stop()
}

// onLaunch records the LAUNCHED event once per target, also across restarts.
func (s *CountdownService) onLaunch() {
	target := s.engine.Target().UTC().Format(time.RFC3339)
	s.log.Infow("countdown_launched", "target", target)

	ctx, cancel := context.WithTimeout(context.Background(), eventWriteTimeout)
	defer cancel()

	launched, err := s.events.List(ctx, time.Time{}, time.Time{}, models.EventLaunched)
	if err != nil {
		s.log.Errorw("launch_history_failed", "err", err)
	}
	for _, ev := range launched {
		if meta, ok := ev.Metadata.(map[string]any); ok && meta["target"] == target {
			return
		}
	}

	s.appendEvent(ctx, models.LaunchEvent{
		Type:        models.EventLaunched,
		Description: "countdown reached zero",
		Metadata:    map[string]any{"target": target},
	})
}

// appendEvent never fails the caller; the audit log is best effort.
func (s *CountdownService) appendEvent(ctx context.Context, ev models.LaunchEvent) {
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Errorw("event_append_failed", "type", ev.Type, "err", err)
	}
}

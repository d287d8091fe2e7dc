package service

import (
	"context"
	"sync"
	"time"

	"launchpad/internal/models"
)

// fakeEventRepo records appends and serves List from a fixed slice.
type fakeEventRepo struct {
	mu sync.Mutex

	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events    []models.LaunchEvent
	listErr   error
	appendErr error

	appended  []models.LaunchEvent
	listCalls int
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.LaunchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, f.listErr
}

func (f *fakeEventRepo) Append(_ context.Context, e models.LaunchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) appendedOfType(typ string) []models.LaunchEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LaunchEvent
	for _, e := range f.appended {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type fakeSettingsRepo struct {
	saved   models.LaunchSettings
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeSettingsRepo) Save(_ context.Context, s models.LaunchSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	s.ID = 1
	f.saved = s
	return nil
}

func (f *fakeSettingsRepo) Load(context.Context) (models.LaunchSettings, error) {
	return f.saved, f.loadErr
}

// fakeSubscriberRepo keeps emails in memory.
type fakeSubscriberRepo struct {
	emails  map[string]string // email -> source
	addErr  error
	addCall int
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{emails: map[string]string{}}
}

func (f *fakeSubscriberRepo) Add(_ context.Context, s models.Subscriber) (bool, error) {
	f.addCall++
	if f.addErr != nil {
		return false, f.addErr
	}
	if _, ok := f.emails[s.Email]; ok {
		return false, nil
	}
	f.emails[s.Email] = s.Source
	return true, nil
}

func (f *fakeSubscriberRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeSubscriberRepo) Count(context.Context) (int, error) {
	return len(f.emails), nil
}

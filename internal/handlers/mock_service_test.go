package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"launchpad/internal/countdown"
	"launchpad/internal/models"
	"launchpad/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, _ string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) EnsureAdmin(context.Context, string, string) error { return nil }

type mockCountdown struct {
	mu sync.Mutex

	snap    countdown.Snapshot
	target  time.Time
	setErr  error
	lastRaw any

	stream       chan countdown.Snapshot
	unsubscribed int
}

func (m *mockCountdown) Snapshot() countdown.Snapshot { return m.snap }

func (m *mockCountdown) Target() time.Time { return m.target }

func (m *mockCountdown) SetTarget(_ context.Context, raw any) (countdown.Snapshot, error) {
	m.lastRaw = raw
	return m.snap, m.setErr
}

func (m *mockCountdown) Subscribe(int) <-chan countdown.Snapshot { return m.stream }

func (m *mockCountdown) Unsubscribe(<-chan countdown.Snapshot) {
	m.mu.Lock()
	m.unsubscribed++
	m.mu.Unlock()
}

func (m *mockCountdown) unsubscribeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubscribed
}

func (m *mockCountdown) Restore(context.Context) error { return nil }

func (m *mockCountdown) Run(context.Context) {}

type mockSubscription struct {
	result    service.SubscriptionResult
	err       error
	count     int
	countErr  error
	exists    bool
	lastEmail string
}

func (m *mockSubscription) Submit(_ context.Context, email string) (service.SubscriptionResult, error) {
	m.lastEmail = email
	return m.result, m.err
}

func (m *mockSubscription) Count(context.Context) (int, error) { return m.count, m.countErr }

func (m *mockSubscription) IsSubscribed(_ context.Context, email string) (bool, error) {
	m.lastEmail = email
	return m.exists, nil
}

type mockEventLog struct {
	resp     []models.LaunchEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.LaunchEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, 0).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeader(req *http.Request, h http.Header) *http.Request {
	for k, vv := range h {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

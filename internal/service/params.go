package service

import "time"

// LogFilter narrows the launch event history.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SUBSCRIBED", "TARGET_CHANGED", "LAUNCHED"
}

// SubscriptionResult is the user-facing outcome of a subscription attempt.
type SubscriptionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthParams configures admin token issuing.
type AuthParams struct {
	SigningKey  string
	TokenTTL    time.Duration
	AllowSignUp bool
}

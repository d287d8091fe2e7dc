package models

import "time"

// Launch event types.
const (
	EventSubscribed    = "SUBSCRIBED"
	EventTargetChanged = "TARGET_CHANGED"
	EventLaunched      = "LAUNCHED"
)

// LaunchEvent is a single audit log entry.
type LaunchEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SUBSCRIBED | TARGET_CHANGED | LAUNCHED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

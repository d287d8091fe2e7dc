package models

import "time"

// LaunchSettings is the persisted launch configuration. ID is 0 when nothing
// has been saved yet.
type LaunchSettings struct {
	ID        int       `json:"id"`
	Target    time.Time `json:"target"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Subscriber is an email address waiting for the launch notification.
type Subscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`  // trimmed, lower-case
	Source    string    `json:"source"` // LOCAL | SHEETS
	CreatedAt time.Time `json:"created_at"`
}

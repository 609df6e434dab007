// Package session defines the exercise session record shared by the
// store implementations and the scoring engine.
package session

import "time"

// Session is a single recorded exercise session. Only StartedAt
// participates in windowing and scoring; EndedAt is informational.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

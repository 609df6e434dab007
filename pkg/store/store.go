// Package store provides session persistence and querying for the
// scoring engine's upstream collaborator contract: given a user and a
// time range, return every session that could fall in the range. The
// engine tolerates over-fetching and any ordering, so implementations
// only have to guarantee that no in-range session is missing.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/codeGROOVE-dev/steady/pkg/session"
)

// ErrUnavailable marks a store that could not deliver session data at
// all, as opposed to delivering an empty set. Callers surface it as a
// generic upstream failure; any retry policy lives inside the store
// implementation, never in the engine.
var ErrUnavailable = errors.New("session store unavailable")

// Store supplies candidate sessions for scoring.
type Store interface {
	// SessionsForUser returns all sessions for userID whose start
	// instant falls within [from, to]. Returning extra sessions
	// outside the range is fine.
	SessionsForUser(ctx context.Context, userID string, from, to time.Time) ([]session.Session, error)
}

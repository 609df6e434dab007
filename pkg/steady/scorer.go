package steady

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// Scorer fetches a user's sessions and scores them. The underlying
// computation is pure; the Scorer only adds the store fetch and
// logging around it, so a single Scorer is safe for concurrent use.
type Scorer struct {
	opts options
}

// NewScorer builds a Scorer. A store must be supplied via WithStore.
func NewScorer(opts ...Option) (*Scorer, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		return nil, fmt.Errorf("a session store is required")
	}
	return &Scorer{opts: o}, nil
}

// Score computes the consistency score for userID anchored at the
// reference instant. The fetch range is widened by a day on each side
// of the window; the engine filters precisely, so over-fetching is
// harmless while sessions recorded near the boundaries can never be
// lost to storage-side timestamp granularity.
func (s *Scorer) Score(ctx context.Context, userID string, reference time.Time) (*Result, error) {
	start := time.Now()

	w := window.ForReference(reference)
	sessions, err := s.opts.store.SessionsForUser(ctx, userID, w.Start.AddDate(0, 0, -1), w.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetching sessions for %s: %w", userID, err)
	}

	result := Compute(sessions, reference)

	s.opts.logger.Info("consistency score computed",
		"user_id", userID,
		"reference", reference.UTC().Format(time.RFC3339),
		"sessions", len(sessions),
		"score", result.Score,
		"duration", time.Since(start))

	return result, nil
}

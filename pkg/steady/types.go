package steady

import (
	"log/slog"

	"github.com/codeGROOVE-dev/steady/pkg/chart"
	"github.com/codeGROOVE-dev/steady/pkg/store"
)

// Option configures a Scorer.
type Option func(*options)

type options struct {
	store  store.Store
	logger *slog.Logger
}

// WithStore sets the session store the Scorer fetches from.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Result is the consistency score for one user over one window,
// rendered verbatim by the transport layer.
type Result struct {
	Score        int           `json:"score"`
	Explanations []string      `json:"explanations"`
	ChartData    []chart.Point `json:"chart_data"`
	PeriodStart  string        `json:"period_start"`
	PeriodEnd    string        `json:"period_end"`
}

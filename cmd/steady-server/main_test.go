package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/steady"
	"github.com/codeGROOVE-dev/steady/pkg/store"
)

type stubStore struct {
	sessions []session.Session
	err      error
}

func (s *stubStore) SessionsForUser(context.Context, string, time.Time, time.Time) ([]session.Session, error) {
	return s.sessions, s.err
}

func testServer(t *testing.T, st store.Store) *server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scorer, err := steady.NewScorer(steady.WithStore(st), steady.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	cache := otter.Must(&otter.Options[string, []byte]{
		MaximumSize:      100,
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](time.Minute),
	})
	return &server{
		scorer:  scorer,
		cache:   cache,
		limiter: newRateLimiter(100),
		logger:  logger,
		now: func() time.Time {
			return time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)
		},
	}
}

func postScore(t *testing.T, srv *server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	srv.handleScore(rec, req)
	return rec
}

func TestHandleScore(t *testing.T) {
	start := time.Date(2024, 6, 20, 7, 0, 0, 0, time.UTC)
	srv := testServer(t, &stubStore{sessions: []session.Session{
		{ID: "s1", UserID: "alice", StartedAt: start, EndedAt: start.Add(time.Hour)},
	}})

	rec := postScore(t, srv, `{"user_id":"alice","reference_date":"2024-06-28"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result steady.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(result.ChartData) != 28 {
		t.Errorf("chart length = %d, want 28", len(result.ChartData))
	}
	if result.PeriodEnd != "2024-06-28" {
		t.Errorf("period_end = %q, want 2024-06-28", result.PeriodEnd)
	}
	if result.Score <= 0 {
		t.Errorf("score = %d, want positive for an active user", result.Score)
	}
}

func TestHandleScoreCachesResponses(t *testing.T) {
	srv := testServer(t, &stubStore{})

	first := postScore(t, srv, `{"user_id":"alice","reference_date":"2024-06-28"}`)
	if got := first.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	second := postScore(t, srv, `{"user_id":"alice","reference_date":"2024-06-28"}`)
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs from original")
	}
}

func TestHandleScoreValidation(t *testing.T) {
	srv := testServer(t, &stubStore{})

	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"reference_date":"2024-06-28"}`},
		{"bad user", `{"user_id":"not ok"}`},
		{"bad date", `{"user_id":"alice","reference_date":"June 1st"}`},
		{"far future date", `{"user_id":"alice","reference_date":"2024-08-28"}`},
		{"not json", `user_id=alice`},
	}
	for _, tt := range tests {
		rec := postScore(t, srv, tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
			continue
		}
		var resp struct {
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decoding error response: %v", tt.name, err)
			continue
		}
		if len(resp.Errors) == 0 {
			t.Errorf("%s: error list is empty", tt.name)
		}
	}
}

func TestHandleScoreStoreUnavailable(t *testing.T) {
	srv := testServer(t, &stubStore{err: store.ErrUnavailable})

	rec := postScore(t, srv, `{"user_id":"alice"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3)
	for i := range 3 {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("fourth request allowed, want denied")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other IP denied, want allowed")
	}
}

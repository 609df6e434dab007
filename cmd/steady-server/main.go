// Package main implements the steady web server for
// training-consistency scoring.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/codeGROOVE-dev/steady/pkg/config"
	"github.com/codeGROOVE-dev/steady/pkg/sessionapi"
	"github.com/codeGROOVE-dev/steady/pkg/steady"
	"github.com/codeGROOVE-dev/steady/pkg/store"
)

var (
	configPath = flag.String("config", "", "YAML config file (or set STEADY_CONFIG)")
	port       = flag.String("port", "", "Port for web server (overrides config)")
	dbPath     = flag.String("db", "", "SQLite session database (overrides config)")
	serviceURL = flag.String("session-service", "", "Upstream session service URL (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

type rateLimiter struct {
	requests  map[string][]time.Time
	perMinute int
	mu        sync.Mutex
}

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		requests:  make(map[string][]time.Time),
		perMinute: perMinute,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-time.Minute)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.perMinute {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("steady server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *configPath == "" {
		*configPath = os.Getenv("STEADY_CONFIG")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *serviceURL != "" {
		cfg.SessionServiceURL = *serviceURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("STEADY_DB")
	}

	logger.Info("server configuration",
		"port", cfg.Port,
		"verbose", *verbose,
		"db_path", cfg.DBPath,
		"session_service", cfg.SessionServiceURL,
		"cache_ttl", cfg.CacheTTL(),
		"rate_per_minute", cfg.RatePerMinute)

	ctx := context.Background()

	var sessions store.Store
	var closeStore func() error
	switch {
	case cfg.DBPath != "":
		db, err := store.OpenSQLite(ctx, cfg.DBPath, logger)
		if err != nil {
			logger.Error("failed to open session database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		sessions = db
		closeStore = db.Close
	case cfg.SessionServiceURL != "":
		client, err := sessionapi.New(cfg.SessionServiceURL, logger)
		if err != nil {
			logger.Error("failed to build session service client", "error", err)
			os.Exit(1)
		}
		sessions = client
		closeStore = func() error { return nil }
	default:
		logger.Error("no session source configured: set db_path or session_service_url")
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close session store", "error", err)
		}
	}()

	scorer, err := steady.NewScorer(steady.WithStore(sessions), steady.WithLogger(logger))
	if err != nil {
		logger.Error("failed to build scorer", "error", err)
		os.Exit(1)
	}

	cache := otter.Must(&otter.Options[string, []byte]{
		MaximumSize:      10_000,
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](cfg.CacheTTL()),
	})

	srv := &server{
		scorer:  scorer,
		cache:   cache,
		limiter: newRateLimiter(cfg.RatePerMinute),
		logger:  logger,
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/score", srv.handleScore)
	mux.HandleFunc("GET /healthz", srv.handleHealthz)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

type server struct {
	scorer  *steady.Scorer
	cache   *otter.Cache[string, []byte]
	limiter *rateLimiter
	logger  *slog.Logger
	now     func() time.Time
}

func (s *server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		}

		handler.ServeHTTP(w, r)
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type scoreRequest struct {
	UserID        string `json:"user_id"`
	ReferenceDate string `json:"reference_date,omitempty"`
}

func (s *server) handleScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := w.Header().Get("X-Request-ID")
	ip := clientIP(r)

	if !s.limiter.allow(ip) {
		s.logger.Warn("rate limit exceeded", "request_id", requestID, "client_ip", ip)
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", "request_id", requestID, "client_ip", ip, "error", err)
		writeErrors(w, http.StatusBadRequest, []string{"request body must be JSON"})
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)

	reference, validationErrs := steady.ValidateRequest(req.UserID, req.ReferenceDate, s.now().UTC())
	if len(validationErrs) > 0 {
		s.logger.Warn("invalid score request",
			"request_id", requestID,
			"user_id", req.UserID,
			"errors", validationErrs)
		writeErrors(w, http.StatusBadRequest, validationErrs)
		return
	}

	cacheKey := req.UserID + "|" + reference.Format("2006-01-02")
	if data, found := s.cache.GetIfPresent(cacheKey); found {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		if _, err := w.Write(data); err != nil {
			s.logger.Error("failed to write cached response", "request_id", requestID, "error", err)
		}
		s.logger.Info("score request completed",
			"request_id", requestID,
			"user_id", req.UserID,
			"cache", "hit",
			"duration_ms", time.Since(start).Milliseconds())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := s.scorer.Score(ctx, req.UserID, reference)
	if err != nil {
		status := http.StatusBadGateway
		message := "session data is temporarily unavailable"
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
			message = "scoring took too long"
		}
		s.logger.Error("scoring failed",
			"request_id", requestID,
			"user_id", req.UserID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		writeErrors(w, status, []string{message})
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode result", "request_id", requestID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.cache.Set(cacheKey, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write response", "request_id", requestID, "error", err)
	}

	s.logger.Info("score request completed",
		"request_id", requestID,
		"user_id", req.UserID,
		"score", result.Score,
		"cache", "miss",
		"duration_ms", time.Since(start).Milliseconds())
}

func writeErrors(w http.ResponseWriter, status int, errs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Errors []string `json:"errors"`
	}{Errors: errs})
}

func clientIP(r *http.Request) string {
	return strings.Split(r.RemoteAddr, ":")[0]
}

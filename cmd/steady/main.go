// Package main implements the steady CLI for training-consistency scoring.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/steady/pkg/chart"
	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/steady"
	"github.com/codeGROOVE-dev/steady/pkg/store"
)

var (
	dbPath     = flag.String("db", "", "SQLite session database (or set STEADY_DB)")
	refDate    = flag.String("date", "", "Reference date YYYY-MM-DD (default today)")
	ingestPath = flag.String("ingest", "", "JSON file of sessions to import before scoring")
	noColor    = flag.Bool("no-color", false, "Disable colored output")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("steady CLI v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <user-id>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	userID := args[0]

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *dbPath == "" {
		*dbPath = os.Getenv("STEADY_DB")
	}
	if *dbPath == "" {
		logger.Error("no session database configured, pass -db or set STEADY_DB")
		os.Exit(1)
	}
	if *noColor {
		color.NoColor = true
	}

	now := time.Now().UTC()
	reference, errs := steady.ValidateRequest(userID, *refDate, now)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.OpenSQLite(ctx, *dbPath, logger)
	if err != nil {
		logger.Error("failed to open session database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close session database", "error", err)
		}
	}()

	if *ingestPath != "" {
		count, err := ingest(ctx, db, *ingestPath)
		if err != nil {
			logger.Error("ingest failed", "path", *ingestPath, "error", err)
			os.Exit(1)
		}
		logger.Info("sessions ingested", "path", *ingestPath, "count", count)
	}

	scorer, err := steady.NewScorer(steady.WithStore(db), steady.WithLogger(logger))
	if err != nil {
		logger.Error("failed to build scorer", "error", err)
		os.Exit(1)
	}

	result, err := scorer.Score(ctx, userID, reference)
	if err != nil {
		logger.Error("scoring failed", "user_id", userID, "error", err)
		os.Exit(1)
	}

	printResult(userID, result)
}

// ingest imports sessions from a JSON array file into the store.
func ingest(ctx context.Context, db *store.SQLiteStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading session file: %w", err)
	}

	var sessions []session.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return 0, fmt.Errorf("parsing session file: %w", err)
	}

	for _, sess := range sessions {
		if err := db.Insert(ctx, sess); err != nil {
			return 0, err
		}
	}
	return len(sessions), nil
}

func printResult(userID string, result *steady.Result) {
	fmt.Printf("\n🏋️  Consistency for %s\n", userID)
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Score:  %s\n", formatScore(result.Score))
	fmt.Printf("Window: %s → %s\n\n", result.PeriodStart, result.PeriodEnd)

	for _, line := range result.Explanations {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()

	fmt.Print(chart.Render(result.ChartData))
}

// formatScore colors the score by band: green from 75, yellow from
// 45, red below.
func formatScore(score int) string {
	text := fmt.Sprintf("%d / 100", score)
	switch {
	case score >= 75:
		return color.New(color.FgGreen, color.Bold).Sprint(text)
	case score >= 45:
		return color.New(color.FgYellow, color.Bold).Sprint(text)
	default:
		return color.New(color.FgRed, color.Bold).Sprint(text)
	}
}

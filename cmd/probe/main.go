// Command probe performs a one-shot fetch of the SWPC feeds, scores the
// current conditions for the configured observer, and prints the report that
// the watcher would send. Useful for checking feed reachability and for
// previewing notification text without running the service.
//
// Usage:
//
//	go run ./cmd/probe [-json] [-base-url https://services.swpc.noaa.gov]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/spaceweather-watch/internal/adapter/swpc"
	"github.com/couchcryptid/spaceweather-watch/internal/config"
	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
	"github.com/couchcryptid/spaceweather-watch/internal/watch"
)

func main() {
	asJSON := flag.Bool("json", false, "print the reading and assessment as JSON instead of the report text")
	baseURL := flag.String("base-url", "", "override the SWPC base URL")
	verbose := flag.Bool("v", false, "log fetch details to stderr")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.SWPCBaseURL = *baseURL
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	metrics := observability.NewMetricsForTesting()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clock := clockwork.NewRealClock()
	telemetry := swpc.NewClient(cfg.SWPCBaseURL, cfg.SWPCTimeout, metrics, logger)
	sampler := watch.NewSampler(telemetry, clock, cfg.Location, metrics, logger)

	reading := sampler.Snapshot(ctx)
	assessment := domain.Score(reading, domain.ScoreParams{
		Latitude:    cfg.Latitude,
		ShortBzNT:   cfg.ShortBzNT,
		ShortSpdKms: cfg.ShortSpdKms,
	})

	if *asJSON {
		out := struct {
			Reading    domain.Reading        `json:"reading"`
			Assessment domain.RiskAssessment `json:"assessment"`
		}{reading, assessment}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(domain.FormatReport(domain.ReportOptions{
		Location:     cfg.Location,
		LISThreshold: cfg.LISThreshold,
		ShortBzNT:    cfg.ShortBzNT,
		ShortSpdKms:  cfg.ShortSpdKms,
	}, reading, assessment))
}

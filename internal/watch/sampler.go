package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
)

// TelemetryReader is the telemetry access port consumed by the scheduler
// loops. *swpc.Client implements it.
type TelemetryReader interface {
	KpMax24h(ctx context.Context) (float64, error)
	Bz(ctx context.Context) (*float64, error)
	Speed(ctx context.Context) (*float64, error)
	AlertLevels(ctx context.Context) (domain.AlertLevels, error)
}

// Sampler assembles a Reading from the individual feeds, degrading per feed:
// a failed fetch becomes a zero Kp, an absent scalar, or zero alert levels,
// and scoring proceeds on whatever arrived.
type Sampler struct {
	telemetry TelemetryReader
	clock     clockwork.Clock
	location  *time.Location
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewSampler creates a Sampler over the given telemetry port.
func NewSampler(telemetry TelemetryReader, clock clockwork.Clock, location *time.Location, metrics *observability.Metrics, logger *slog.Logger) *Sampler {
	return &Sampler{
		telemetry: telemetry,
		clock:     clock,
		location:  location,
		metrics:   metrics,
		logger:    logger,
	}
}

// Snapshot fetches every feed and returns the reading for this instant.
// It never fails; degraded feeds are logged and counted.
func (s *Sampler) Snapshot(ctx context.Context) domain.Reading {
	r := domain.Reading{
		IsDaylight: domain.IsDaylight(s.clock.Now(), s.location),
	}

	kp, err := s.telemetry.KpMax24h(ctx)
	if err != nil {
		s.degraded("kp", err)
	} else {
		r.KpMax24h = kp
	}

	if r.Bz, err = s.telemetry.Bz(ctx); err != nil {
		s.degraded("bz", err)
		r.Bz = nil
	}
	if r.Speed, err = s.telemetry.Speed(ctx); err != nil {
		s.degraded("speed", err)
		r.Speed = nil
	}

	levels, err := s.telemetry.AlertLevels(ctx)
	if err != nil {
		s.degraded("alerts", err)
	} else {
		r.Levels = levels
	}

	return r
}

// Levels fetches only the alert-level feed, for the alerts loop.
func (s *Sampler) Levels(ctx context.Context) (domain.AlertLevels, error) {
	levels, err := s.telemetry.AlertLevels(ctx)
	if err != nil {
		s.degraded("alerts", err)
		return domain.AlertLevels{}, err
	}
	return levels, nil
}

func (s *Sampler) degraded(feed string, err error) {
	s.metrics.FetchErrors.WithLabelValues(feed).Inc()
	s.logger.Warn("telemetry fetch degraded", "feed", feed, "error", err)
}

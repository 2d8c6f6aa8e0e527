// Package watch runs the scheduler: four independent cadence loops that fetch
// telemetry, score it, decide whether operators need to hear about it, and
// hand positive decisions to the dispatcher.
//
// Each loop owns its notification state (cooldowns, level memory) outright, so
// the loops share nothing mutable and need no locking. A failure inside one
// tick is caught at the tick boundary and never stops another loop.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/spaceweather-watch/internal/config"
	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
)

// Loop cadences and per-class cooldown windows.
const (
	fastInterval   = time.Minute
	alertsInterval = 5 * time.Minute
	kpWarmInterval = 30 * time.Minute

	shortFuseCooldown = 10 * time.Minute
	lisCooldown       = 30 * time.Minute
)

// Status is the most recent scored snapshot, exposed on /statusz.
type Status struct {
	Reading    domain.Reading        `json:"reading"`
	Assessment domain.RiskAssessment `json:"assessment"`
	SampledAt  time.Time             `json:"sampled_at"`
}

// Watcher wires the sampler, trackers, and dispatcher into the four loops.
type Watcher struct {
	sampler    *Sampler
	dispatcher *Dispatcher
	cfg        *config.Config
	params     domain.ScoreParams
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger

	// Notification state, each owned by exactly one loop.
	shortFuse *cooldown   // fast loop
	lis       *cooldown   // fast loop
	levels    levelMemory // alerts loop

	ready  atomic.Bool
	status atomic.Pointer[Status]
}

// New creates a Watcher. The clock is injected so tests can drive every timer.
func New(sampler *Sampler, dispatcher *Dispatcher, cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Watcher {
	return &Watcher{
		sampler:    sampler,
		dispatcher: dispatcher,
		cfg:        cfg,
		params: domain.ScoreParams{
			Latitude:    cfg.Latitude,
			ShortBzNT:   cfg.ShortBzNT,
			ShortSpdKms: cfg.ShortSpdKms,
		},
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
		shortFuse: newCooldown(clock, shortFuseCooldown),
		lis:       newCooldown(clock, lisCooldown),
	}
}

// CheckReadiness returns nil once the watcher has completed at least one
// telemetry snapshot.
func (w *Watcher) CheckReadiness(_ context.Context) error {
	if !w.ready.Load() {
		return errors.New("watcher has not sampled telemetry yet")
	}
	return nil
}

// Status returns the most recent scored snapshot, or nil before the first one.
func (w *Watcher) Status() *Status {
	return w.status.Load()
}

// Baseline builds and sends the startup report unconditionally.
func (w *Watcher) Baseline(ctx context.Context) {
	reading := w.sampler.Snapshot(ctx)
	assessment := domain.Score(reading, w.params)
	w.recordStatus(reading, assessment)
	w.dispatcher.Baseline(ctx, reading, assessment)
}

// Run starts the four loops and blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("watcher started",
		"lat", w.cfg.Latitude,
		"tz", w.cfg.TZName,
		"lis_threshold", w.cfg.LISThreshold,
		"daily_hour", w.cfg.DailyHour,
	)
	w.metrics.WatcherRunning.Set(1)
	defer w.metrics.WatcherRunning.Set(0)

	var wg sync.WaitGroup
	loops := []struct {
		name     string
		interval time.Duration
		tick     func(context.Context)
	}{
		{"fast", fastInterval, w.fastTick},
		{"alerts", alertsInterval, w.alertsTick},
		{"warmcache", kpWarmInterval, w.warmTick},
	}
	for _, loop := range loops {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.runPeriodic(ctx, loop.name, loop.interval, loop.tick)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.runDaily(ctx)
	}()

	wg.Wait()
	w.logger.Info("watcher stopped", "reason", context.Cause(ctx))
}

// runPeriodic drives one loop on its own ticker. Tick bodies run behind a
// panic boundary so a bad tick degrades to a log line.
func (w *Watcher) runPeriodic(ctx context.Context, name string, interval time.Duration, tick func(context.Context)) {
	ticker := w.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			w.safeTick(ctx, name, tick)
		}
	}
}

func (w *Watcher) safeTick(ctx context.Context, name string, tick func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("tick panicked", "loop", name, "panic", r)
		}
	}()

	start := w.clock.Now()
	tick(ctx)
	w.metrics.TicksTotal.WithLabelValues(name).Inc()
	w.metrics.TickDuration.WithLabelValues(name).Observe(w.clock.Since(start).Seconds())
}

// fastTick scores a full snapshot and applies the short-fuse rule, then the
// LIS-threshold rule. Short-fuse takes priority and arms only its own
// cooldown, so the two classes cannot starve each other.
func (w *Watcher) fastTick(ctx context.Context) {
	reading := w.sampler.Snapshot(ctx)
	assessment := domain.Score(reading, w.params)
	w.recordStatus(reading, assessment)

	switch {
	case assessment.ShortFuse && w.shortFuse.ready():
		w.dispatcher.Risk(ctx, classShortFuse, reading, assessment)
		w.shortFuse.markSent()
	case assessment.Index >= w.cfg.LISThreshold && w.lis.ready():
		w.dispatcher.Risk(ctx, classLIS, reading, assessment)
		w.lis.markSent()
	}
}

// alertsTick notifies when the (G,R,S) tuple crosses a configured minimum and
// differs from the last notified tuple. The body re-scores current telemetry
// rather than reusing the snapshot that revealed the change.
func (w *Watcher) alertsTick(ctx context.Context) {
	levels, err := w.sampler.Levels(ctx)
	if err != nil {
		return
	}

	if !levels.AnyAtLeast(w.cfg.GMinNotify, w.cfg.RMinNotify, w.cfg.SMinNotify) {
		return
	}
	if !w.levels.changed(levels) {
		return
	}

	reading := w.sampler.Snapshot(ctx)
	assessment := domain.Score(reading, w.params)
	w.dispatcher.AlertLevels(ctx, levels, reading, assessment)
	w.levels.remember(levels)
}

// warmTick fetches the Kp forecast and discards it, keeping the upstream
// response warm for the fast loop. Purely operational; no notification.
func (w *Watcher) warmTick(ctx context.Context) {
	if _, err := w.sampler.telemetry.KpMax24h(ctx); err != nil {
		w.logger.Warn("kp warm fetch failed", "error", err)
	}
}

// runDaily fires a full report once per civil day at the configured local
// hour. The target is recomputed from the local calendar every cycle and
// re-validated after waking, so DST transitions and spurious wakeups cannot
// cause a missed or doubled fire.
func (w *Watcher) runDaily(ctx context.Context) {
	for {
		target := nextDailyFire(w.clock.Now(), w.cfg.DailyHour, w.cfg.Location)
		w.logger.Info("next daily report scheduled", "at", target)

		if !w.sleepUntil(ctx, target) {
			return
		}
		if w.clock.Now().Before(target) {
			// Spurious wakeup; recompute without firing.
			continue
		}

		w.safeTick(ctx, "daily", func(ctx context.Context) {
			reading := w.sampler.Snapshot(ctx)
			assessment := domain.Score(reading, w.params)
			w.recordStatus(reading, assessment)
			w.dispatcher.Daily(ctx, target, reading, assessment)
		})
	}
}

// sleepUntil suspends until the target instant, treating a zero or negative
// duration as due immediately. Returns false if the context ended first.
func (w *Watcher) sleepUntil(ctx context.Context, target time.Time) bool {
	d := target.Sub(w.clock.Now())
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := w.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func (w *Watcher) recordStatus(r domain.Reading, a domain.RiskAssessment) {
	w.metrics.RiskIndex.Set(a.Index)
	if a.ShortFuse {
		w.metrics.ShortFuseActive.Set(1)
	} else {
		w.metrics.ShortFuseActive.Set(0)
	}
	w.status.Store(&Status{Reading: r, Assessment: a, SampledAt: w.clock.Now()})
	w.ready.Store(true)
}

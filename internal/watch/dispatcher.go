package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
)

// Notification category classes, used as metric labels and log fields.
const (
	classShortFuse   = "short_fuse"
	classLIS         = "lis"
	classAlertLevels = "alert_levels"
	classDaily       = "daily"
	classBaseline    = "baseline"
)

// Notifier delivers a formatted notification. *notify.Notifier implements it.
type Notifier interface {
	Notify(ctx context.Context, subject, body string)
}

// Dispatcher turns a positive notification decision into a subject line and
// report body and hands them to the notification port. Delivery failures are
// the port's concern; a dispatched notification counts against its cooldown
// regardless of delivery outcome.
type Dispatcher struct {
	notifier Notifier
	opts     domain.ReportOptions
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher rendering reports with the given options.
func NewDispatcher(notifier Notifier, opts domain.ReportOptions, metrics *observability.Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		opts:     opts,
		metrics:  metrics,
		logger:   logger,
	}
}

// Risk sends a category+index subject for the fast loop's short-fuse and
// LIS-threshold classes.
func (d *Dispatcher) Risk(ctx context.Context, class string, r domain.Reading, a domain.RiskAssessment) {
	subject := fmt.Sprintf("Space Weather: %s (LIS %.0f)", a.Category, a.Index)
	d.send(ctx, class, subject, r, a)
}

// AlertLevels sends an alert-level-change notification. The body reflects the
// current instant's full telemetry, not the moment of the level transition.
func (d *Dispatcher) AlertLevels(ctx context.Context, levels domain.AlertLevels, r domain.Reading, a domain.RiskAssessment) {
	subject := fmt.Sprintf("SWPC Alerts: %s", levels)
	d.send(ctx, classAlertLevels, subject, r, a)
}

// Daily sends the scheduled daily outlook, dated with the fire instant's
// local civil date.
func (d *Dispatcher) Daily(ctx context.Context, firedAt time.Time, r domain.Reading, a domain.RiskAssessment) {
	subject := fmt.Sprintf("Daily Space Weather Outlook — %s", firedAt.In(d.opts.Location).Format("2006-01-02"))
	d.send(ctx, classDaily, subject, r, a)
}

// Baseline sends the startup report so operators immediately see current
// conditions and confirm their channels work.
func (d *Dispatcher) Baseline(ctx context.Context, r domain.Reading, a domain.RiskAssessment) {
	subject := fmt.Sprintf("Space Weather Startup Baseline: %s (LIS %.0f)", a.Category, a.Index)
	d.send(ctx, classBaseline, subject, r, a)
}

func (d *Dispatcher) send(ctx context.Context, class, subject string, r domain.Reading, a domain.RiskAssessment) {
	d.metrics.NotificationsSent.WithLabelValues(class).Inc()
	d.logger.Info("dispatching notification", "class", class, "subject", subject, "index", a.Index)
	d.notifier.Notify(ctx, subject, domain.FormatReport(d.opts, r, a))
}

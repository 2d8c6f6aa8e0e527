// Package notify delivers formatted reports to operators. Channels are
// independent: a failure on one is logged and counted but never blocks the
// others, and delivery is best-effort with no retries.
package notify

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/spaceweather-watch/internal/observability"
)

// Channel is a single notification transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}

// Notifier fans a notification out to every configured channel.
type Notifier struct {
	channels []Channel
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewNotifier creates a Notifier over the given channels. An empty channel
// list is valid: notifications are then log-only.
func NewNotifier(channels []Channel, metrics *observability.Metrics, logger *slog.Logger) *Notifier {
	return &Notifier{
		channels: channels,
		metrics:  metrics,
		logger:   logger,
	}
}

// Notify sends subject and body on every channel. Failures do not stop the
// remaining channels and are not returned: a notification decision counts
// against its cooldown whether or not delivery succeeded.
func (n *Notifier) Notify(ctx context.Context, subject, body string) {
	if len(n.channels) == 0 {
		n.logger.Info("no notification channels configured", "subject", subject)
		return
	}
	for _, ch := range n.channels {
		if err := ch.Send(ctx, subject, body); err != nil {
			n.metrics.NotifyErrors.WithLabelValues(ch.Name()).Inc()
			n.logger.Error("notification delivery failed",
				"channel", ch.Name(),
				"subject", subject,
				"error", err,
			)
			continue
		}
		n.logger.Info("notification sent", "channel", ch.Name(), "subject", subject)
	}
}

package watch

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/spaceweather-watch/internal/domain"
)

// cooldown remembers when a notification class last fired. Each instance is
// owned by exactly one scheduler loop, so no locking is needed; ownership is
// enforced by construction.
type cooldown struct {
	clock clockwork.Clock
	min   time.Duration
	last  time.Time // zero means never sent (cooldowns reset on restart)
}

func newCooldown(clock clockwork.Clock, min time.Duration) *cooldown {
	return &cooldown{clock: clock, min: min}
}

// ready reports whether enough time has passed since the last send.
func (c *cooldown) ready() bool {
	return c.last.IsZero() || c.clock.Since(c.last) >= c.min
}

// markSent arms the cooldown window from now.
func (c *cooldown) markSent() {
	c.last = c.clock.Now()
}

// levelMemory deduplicates alert-level notifications: a repeat of the same
// (G,R,S) tuple is not news, a change is, with no time gate. Owned by the
// alerts loop only.
type levelMemory struct {
	last domain.AlertLevels
}

func (m *levelMemory) changed(levels domain.AlertLevels) bool {
	return levels != m.last
}

func (m *levelMemory) remember(levels domain.AlertLevels) {
	m.last = levels
}

package watch

import "time"

// nextDailyFire computes the next occurrence of the configured local hour,
// derived from the local civil date rather than by adding 24h to a UTC
// instant, so daylight-saving transitions shift the UTC fire time along with
// the wall clock. If "now" is at or past today's occurrence the target is
// tomorrow's.
//
// On a spring-forward day where the configured hour does not exist,
// time.Date normalizes into the following hour; on a fall-back day where it
// occurs twice, the earlier occurrence wins. Either way there is exactly one
// fire per civil day.
func nextDailyFire(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !local.Before(target) {
		target = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return target
}

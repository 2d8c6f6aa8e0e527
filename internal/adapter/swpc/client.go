// Package swpc fetches space-weather telemetry from the NOAA Space Weather
// Prediction Center public feeds.
//
// Every read degrades instead of failing hard: a malformed feed yields the
// zero value (Kp 0, absent scalar, no alert levels) with a nil error, and only
// transport-level problems surface as errors. Callers treat those errors as
// degraded input too; see the sampler in internal/watch.
package swpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
)

// Feed paths relative to the SWPC base URL.
const (
	kpForecastPath = "/products/noaa-planetary-k-index-forecast.json"
	alertsPath     = "/products/alerts.json"
	magPath        = "/json/rtsw/rtsw_mag_1m.json"
	speedPath      = "/json/rtsw/rtsw_speed_1m.json"
)

const userAgent = "spaceweather-watch/0.2"

// Alert messages embed scale levels as free text, e.g. "WARNING: Geomagnetic
// K-index of 6 expected ... NOAA Scale: G2 - Moderate".
var (
	gLevelRe = regexp.MustCompile(`(?i)G([1-5])`)
	rLevelRe = regexp.MustCompile(`(?i)R([1-5])`)
	sLevelRe = regexp.MustCompile(`(?i)S([1-5])`)
)

// Client reads the SWPC telemetry feeds. It is safe for concurrent use: the
// underlying http.Client is shared, and no other state mutates after construction.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an SWPC telemetry client. Each request carries the given
// timeout so a hung feed cannot stall a scheduler loop past its own tick.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		clock:      clockwork.NewRealClock(),
		metrics:    metrics,
		logger:     logger,
	}
}

// KpMax24h returns the maximum forecast planetary K-index over the next 24
// hours. A malformed feed yields 0.
//
// The forecast product is an array of [time_tag, kp, observed, noaa_scale]
// string rows, optionally preceded by a header row.
func (c *Client) KpMax24h(ctx context.Context) (float64, error) {
	var rows [][]string
	if err := c.getJSON(ctx, "kp", kpForecastPath, &rows); err != nil {
		return 0, err
	}

	now := c.clock.Now().UTC()
	end := now.Add(24 * time.Hour)

	var maxKp float64
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		if i == 0 && row[0] == "time_tag" {
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04:05", row[0])
		if err != nil {
			continue
		}
		ts = ts.UTC()
		if ts.Before(now) || ts.After(end) {
			continue
		}
		if kp, err := strconv.ParseFloat(row[1], 64); err == nil && kp > maxKp {
			maxKp = kp
		}
	}
	return maxKp, nil
}

// Bz returns the latest L1 solar-wind Bz component in nT, or nil if the feed
// is empty or malformed.
func (c *Client) Bz(ctx context.Context) (*float64, error) {
	return c.LatestScalar(ctx, "bz", magPath, "bz_gsm")
}

// Speed returns the latest L1 solar-wind speed in km/s, or nil if unavailable.
func (c *Client) Speed(ctx context.Context) (*float64, error) {
	return c.LatestScalar(ctx, "speed", speedPath, "speed")
}

// LatestScalar scans a time-ordered feed of JSON objects most-recent-first and
// returns the first usable value of the named field. Values may be JSON
// numbers or numeric strings. Returns nil when no row carries the field.
func (c *Client) LatestScalar(ctx context.Context, feed, path, field string) (*float64, error) {
	var rows []map[string]any
	if err := c.getJSON(ctx, feed, path, &rows); err != nil {
		return nil, err
	}

	for i := len(rows) - 1; i >= 0; i-- {
		raw, ok := rows[i][field]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return &v, nil
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return &n, nil
			}
		}
	}
	return nil, nil
}

// AlertLevels returns the maximum G/R/S scale level mentioned across all
// current SWPC alert messages. No matches means all-zero levels.
func (c *Client) AlertLevels(ctx context.Context) (domain.AlertLevels, error) {
	var msgs []struct {
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, "alerts", alertsPath, &msgs); err != nil {
		return domain.AlertLevels{}, err
	}

	var levels domain.AlertLevels
	for _, m := range msgs {
		levels.G = maxLevel(levels.G, gLevelRe, m.Message)
		levels.R = maxLevel(levels.R, rLevelRe, m.Message)
		levels.S = maxLevel(levels.S, sLevelRe, m.Message)
	}
	return levels, nil
}

func maxLevel(current int, re *regexp.Regexp, message string) int {
	for _, match := range re.FindAllStringSubmatch(message, -1) {
		if n, err := strconv.Atoi(match[1]); err == nil && n > current {
			current = n
		}
	}
	return current
}

// getJSON fetches a feed and decodes it into target. Decode failures are
// treated as a malformed feed: logged, target left at its zero value, nil error.
func (c *Client) getJSON(ctx context.Context, feed, path string, target any) error {
	start := c.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", feed, err)
	}
	defer resp.Body.Close()

	c.metrics.FetchDuration.WithLabelValues(feed).Observe(c.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", feed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		c.logger.Warn("malformed feed, using defaults", "feed", feed, "error", err)
	}
	return nil
}

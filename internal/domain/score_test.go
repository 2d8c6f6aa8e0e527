package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestGeoWeight(t *testing.T) {
	tests := []struct {
		name     string
		lat      float64
		expected float64
	}{
		{"equator", 0, 0.2},
		{"low latitude floor", 28.9, 0.2},
		{"just above floor", 35, 0.25},
		{"mid latitude", 40, 0.5},
		{"saturation point", 50, 1.0},
		{"polar", 78, 1.0},
		{"southern hemisphere", -55, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, GeoWeight(tt.lat), 1e-9)
		})
	}
}

func TestGeoWeight_BoundedAndMonotonic(t *testing.T) {
	prev := 0.0
	for lat := 0.0; lat <= 90; lat += 0.5 {
		w := GeoWeight(lat)
		assert.GreaterOrEqual(t, w, 0.2)
		assert.LessOrEqual(t, w, 1.0)
		assert.GreaterOrEqual(t, w, prev, "weight must not decrease with |lat|, lat=%v", lat)
		prev = w
	}
}

func TestScore_KpBounds(t *testing.T) {
	p := ScoreParams{Latitude: 60, ShortBzNT: -10, ShortSpdKms: 600}

	t.Run("kp at or below 4 contributes nothing", func(t *testing.T) {
		for _, kp := range []float64{0, 2.5, 4} {
			a := Score(Reading{KpMax24h: kp}, p)
			assert.Zero(t, a.Index, "kp=%v", kp)
		}
	})

	t.Run("kp at or above 9 saturates the geo base", func(t *testing.T) {
		for _, kp := range []float64{9, 12, 20} {
			a := Score(Reading{KpMax24h: kp}, p)
			assert.InDelta(t, 60.0, a.Index, 1e-9, "kp=%v", kp)
		}
	})
}

func TestScore_MissingTelemetry(t *testing.T) {
	p := ScoreParams{Latitude: 45, ShortBzNT: -10, ShortSpdKms: 600}

	tests := []struct {
		name  string
		bz    *float64
		speed *float64
	}{
		{"both absent", nil, nil},
		{"bz absent", nil, f64(700)},
		{"speed absent", f64(-20), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Score(Reading{KpMax24h: 7, Bz: tt.bz, Speed: tt.speed}, p)
			assert.False(t, a.ShortFuse)
			assert.InDelta(t, 60*0.75*((7.0-4)/5), a.Index, 1e-9)
		})
	}
}

func TestScore_ShortFuse(t *testing.T) {
	p := ScoreParams{Latitude: 28.9, ShortBzNT: -10, ShortSpdKms: 600}

	t.Run("base trigger adds 20", func(t *testing.T) {
		a := Score(Reading{Bz: f64(-10), Speed: f64(600)}, p)
		assert.True(t, a.ShortFuse)
		assert.InDelta(t, 20, a.Index, 1e-9)
	})

	t.Run("deep bz and high speed add bonuses up to 30", func(t *testing.T) {
		a := Score(Reading{Bz: f64(-16), Speed: f64(850)}, p)
		assert.True(t, a.ShortFuse)
		assert.InDelta(t, 30, a.Index, 1e-9)
	})

	t.Run("bonus without base trigger keeps the flag off", func(t *testing.T) {
		// Deep Bz but slow wind: +5 bonus only, not an imminent-impact signal.
		a := Score(Reading{Bz: f64(-16), Speed: f64(400)}, p)
		assert.False(t, a.ShortFuse)
		assert.InDelta(t, 5, a.Index, 1e-9)
	})
}

func TestScore_AlertScaleTerms(t *testing.T) {
	t.Run("radio blackout damped at night", func(t *testing.T) {
		p := ScoreParams{Latitude: 45, ShortBzNT: -10, ShortSpdKms: 600}
		day := Score(Reading{Levels: AlertLevels{R: 3}, IsDaylight: true}, p)
		night := Score(Reading{Levels: AlertLevels{R: 3}, IsDaylight: false}, p)
		assert.InDelta(t, 18, day.Index, 1e-9)
		assert.InDelta(t, 18*0.35, night.Index, 1e-9)
	})

	t.Run("radiation damped at low latitude", func(t *testing.T) {
		high := Score(Reading{Levels: AlertLevels{S: 2}}, ScoreParams{Latitude: 45})
		low := Score(Reading{Levels: AlertLevels{S: 2}}, ScoreParams{Latitude: 28.9})
		assert.InDelta(t, 5, high.Index, 1e-9)
		assert.InDelta(t, 5*0.6, low.Index, 1e-9)
	})

	t.Run("out-of-range levels map to the table maximum", func(t *testing.T) {
		a := Score(Reading{Levels: AlertLevels{R: 9, S: 9}, IsDaylight: true}, ScoreParams{Latitude: 45})
		assert.InDelta(t, 25+10, a.Index, 1e-9)
	})
}

func TestScore_ClampedToHundred(t *testing.T) {
	p := ScoreParams{Latitude: 65, ShortBzNT: -10, ShortSpdKms: 600}
	r := Reading{
		KpMax24h:   20,
		Bz:         f64(-40),
		Speed:      f64(1200),
		Levels:     AlertLevels{G: 5, R: 9, S: 9},
		IsDaylight: true,
	}
	a := Score(r, p)
	assert.Equal(t, 100.0, a.Index)
	assert.Equal(t, CategorySevere, a.Category)
}

func TestCategoryFor_InclusiveBreakpoints(t *testing.T) {
	tests := []struct {
		index    float64
		expected Category
	}{
		{0, CategoryLow},
		{19.999, CategoryLow},
		{20, CategoryElevated},
		{39.999, CategoryElevated},
		{40, CategoryModerate},
		{59.999, CategoryModerate},
		{60, CategoryHigh},
		{79.999, CategoryHigh},
		{80, CategorySevere},
		{100, CategorySevere},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index %v", tt.index), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryFor(tt.index))
		})
	}
}

// TestScore_LowLatitudeStorm reproduces a full worked scenario: a moderate Kp
// forecast at a Florida latitude with a live short-fuse condition.
func TestScore_LowLatitudeStorm(t *testing.T) {
	p := ScoreParams{Latitude: 28.9, ShortBzNT: -10, ShortSpdKms: 600}
	r := Reading{
		KpMax24h:   6,
		Bz:         f64(-12),
		Speed:      f64(650),
		IsDaylight: true,
	}

	a := Score(r, p)

	// geo: 60 * 0.2 * ((6-4)/5) = 4.8; short-fuse base only: 20.
	assert.InDelta(t, 24.8, a.Index, 1e-9)
	assert.Equal(t, CategoryElevated, a.Category)
	assert.True(t, a.ShortFuse)
}

func TestAlertLevels(t *testing.T) {
	l := AlertLevels{G: 2, R: 0, S: 1}
	assert.Equal(t, "G2 R0 S1", l.String())
	assert.True(t, l.AnyAtLeast(2, 2, 2))
	assert.True(t, l.AnyAtLeast(3, 3, 1))
	assert.False(t, l.AnyAtLeast(3, 1, 2))
}

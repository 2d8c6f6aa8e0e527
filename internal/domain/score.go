package domain

// ScoreParams holds the static inputs to scoring: observer position and the
// configured short-fuse thresholds. They never change after startup.
type ScoreParams struct {
	Latitude    float64
	ShortBzNT   float64 // short-fuse trigger: Bz at or below this (nT)
	ShortSpdKms float64 // short-fuse trigger: speed at or above this (km/s)
}

// Lookup tables by R/S scale level (index 0..5). Out-of-range levels map to
// the table maximum.
var (
	rScoreTable = [6]float64{0, 6, 12, 18, 22, 25}
	sScoreTable = [6]float64{0, 2, 5, 8, 10, 10}
)

// Score computes the Local Impact Score for a reading. It is pure and total:
// any combination of inputs, including absent Bz/speed and out-of-range scale
// levels, produces a valid assessment.
func Score(r Reading, p ScoreParams) RiskAssessment {
	index := geoScore(p.Latitude, r.KpMax24h)

	short, shortFuse := shortFuseScore(r.Bz, r.Speed, p.ShortBzNT, p.ShortSpdKms)
	index += short

	index += rScore(r.Levels.R, r.IsDaylight)
	index += sScore(r.Levels.S, p.Latitude)

	index = clamp(index, 0, 100)
	return RiskAssessment{
		Index:     index,
		Category:  CategoryFor(index),
		ShortFuse: shortFuse,
	}
}

// GeoWeight is the latitude weighting of the Kp term: floor 0.2 below ~30°,
// saturating at 1.0 by ~50°. Exported for the probe command's diagnostics.
func GeoWeight(lat float64) float64 {
	return clamp((abs(lat)-30)/20, 0.2, 1.0)
}

func geoScore(lat, kpMax24h float64) float64 {
	// Kp 4 -> 0, Kp 9 -> 1.
	base := clamp((kpMax24h-4)/5, 0, 1)
	return 60 * GeoWeight(lat) * base
}

// shortFuseScore evaluates the live L1 imminent-impact term. Both inputs must
// be present; missing telemetry yields zero and no flag.
func shortFuseScore(bz, speed *float64, bzThreshold, spdThreshold float64) (float64, bool) {
	if bz == nil || speed == nil {
		return 0, false
	}

	var score float64
	flag := false
	if *bz <= bzThreshold && *speed >= spdThreshold {
		score += 20
		flag = true
	}
	if *bz <= bzThreshold-5 {
		score += 5
	}
	if *speed >= spdThreshold+200 {
		score += 5
	}
	return clamp(score, 0, 30), flag
}

func rScore(level int, daylight bool) float64 {
	score := rScoreTable[5]
	if level >= 0 && level < len(rScoreTable) {
		score = rScoreTable[level]
	}
	if !daylight {
		// Radio blackouts affect the sunlit hemisphere.
		score *= 0.35
	}
	return score
}

func sScore(level int, lat float64) float64 {
	score := sScoreTable[5]
	if level >= 0 && level < len(sScoreTable) {
		score = sScoreTable[level]
	}
	if abs(lat) < 40 {
		// Geomagnetic shielding reduces radiation exposure at low latitudes.
		score *= 0.6
	}
	return score
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Package domain models NOAA Space Weather Prediction Center (SWPC) telemetry
// and the Local Impact Score derived from it.
//
// # Data Sources
//
// All telemetry comes from the public SWPC feeds at services.swpc.noaa.gov:
//
//	noaa-planetary-k-index-forecast.json — forecast planetary K-index rows.
//	  Row format: [time_tag, kp, observed/predicted, noaa_scale]. The first
//	  row may be a header. Only rows within the next 24 hours matter here.
//	rtsw_mag_1m.json — real-time solar wind magnetic field at L1, one-minute
//	  cadence. The "bz_gsm" field (nT) is the southward component; strongly
//	  negative Bz couples the solar wind to the magnetosphere.
//	rtsw_speed_1m.json — real-time solar wind speed at L1 ("speed", km/s).
//	alerts.json — current SWPC alert messages. Scale levels are embedded in
//	  free text as G1–G5 (geomagnetic storm), R1–R5 (radio blackout), and
//	  S1–S5 (solar radiation storm).
//
// Feeds go stale or malformed routinely. A [Reading] therefore carries
// optional Bz/speed values and zero defaults elsewhere; scoring is total over
// partial telemetry.
//
// # Local Impact Score
//
// [Score] fuses a reading into a single 0–100 index:
//
//	geo term (max 60):   Kp forecast, weighted by |latitude|. Weight has a
//	                     floor of 0.2 below ~30° and saturates at 1.0 by ~50°
//	                     because auroral-zone effects scale with latitude.
//	short-fuse (max 30): live L1 measurements. Bz at or below the configured
//	                     threshold combined with high speed means a storm is
//	                     minutes-to-an-hour away, independent of the forecast.
//	R term (max 25):     radio blackout scale, damped to 35% at night since
//	                     blackouts affect the sunlit side.
//	S term (max 10):     radiation storm scale, damped to 60% below 40°
//	                     latitude where geomagnetic shielding is stronger.
//
// Categories follow fixed breakpoints, inclusive on the lower bound:
// 80 Severe, 60 High, 40 Moderate, 20 Elevated, otherwise Low.
package domain

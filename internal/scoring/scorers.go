// ABOUTME: Pure component scorer functions mapping raw values to bounded sub-scores.
// ABOUTME: Constants encode calibration, not style; change them and scores drift.
package scoring

import "math"

// clamp bounds a sub-score to [0, 100]. Out-of-domain inputs are defended
// here rather than propagated as errors.
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// GaussianScore maps a value to [0,100] by its deviation from an optimum:
// 100 * exp(-0.5 * (deviation/sigma)^2). Maximum at the optimum, smooth
// decay, asymptotic toward zero.
func GaussianScore(observed, optimal, sigma float64) float64 {
	deviation := math.Abs(observed - optimal)
	if sigma <= 0 {
		if deviation == 0 {
			return 100
		}
		return 0
	}
	return clamp(100 * math.Exp(-0.5*math.Pow(deviation/sigma, 2)))
}

// RangeNormalizeScore maps a value against an ideal band [min, max] in
// three distinct regimes: quadratic ramp below the band, linear penalty
// with a 60-point floor above it, and a parabolic bowl inside it that
// peaks at 100 on the band midpoint.
func RangeNormalizeScore(value, min, max float64) float64 {
	if min <= 0 || max <= min {
		return 0
	}
	if value < 0 {
		value = 0
	}

	switch {
	case value < min:
		return clamp(60 * math.Pow(value/min, 2))
	case value > max:
		excess := value - max
		return clamp(math.Max(60, 100-excess*3))
	default:
		mid := (min + max) / 2
		half := (max - min) / 2
		return clamp(100 - math.Pow((value-mid)/half, 2)*40)
	}
}

// StepThenRangeScore awards full points past a hard minutes threshold and
// otherwise falls back to range-normalizing the percentage representation.
func StepThenRangeScore(minutes, threshold, pct, pctMin, pctMax float64) float64 {
	if minutes >= threshold {
		return 100
	}
	return RangeNormalizeScore(pct, pctMin, pctMax)
}

// Onset latency calibration: falling asleep within fastThreshold minutes is
// a perfect score; up to maxLatency the score decays exponentially; past
// maxLatency it drops linearly from the decay floor.
const (
	latencyFastThreshold = 10.0 // minutes
	latencyMax           = 30.0 // minutes
	latencyDecayK        = 0.9
	latencyFloor         = 40.0
	latencyPenaltyPerMin = 1.0
)

// OnsetLatencyScore maps minutes-to-fall-asleep to [0,100] with an
// exponential decay through the medium range.
func OnsetLatencyScore(minutes float64) float64 {
	if minutes < 0 {
		minutes = 0
	}
	if minutes <= latencyFastThreshold {
		return 100
	}
	if minutes <= latencyMax {
		normalized := (minutes - latencyFastThreshold) / (latencyMax - latencyFastThreshold)
		return clamp(100 * math.Exp(-latencyDecayK*normalized))
	}
	return clamp(latencyFloor - (minutes-latencyMax)*latencyPenaltyPerMin)
}

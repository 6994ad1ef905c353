package matching

import "math"

const scoreEpsilon = 1e-9

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func statusFor(user, required float64) Status {
	if user+scoreEpsilon >= required {
		return StatusMatch
	}
	if user > 0 {
		return StatusPartial
	}
	return StatusMissing
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

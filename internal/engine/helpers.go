package engine

import "math"

// round is half-to-even; every integer the resolver produces goes
// through it.
func round(x float64) int { return int(math.RoundToEven(x)) }

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// chance turns an integer percent into a probability in [0,1].
func chance(pct int) float64 { return clamp01(float64(pct) / 100) }

// roll succeeds with probability p. p <= 0 never succeeds and p >= 1
// always does, whatever the source returns in [0,1).
func roll(rng Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

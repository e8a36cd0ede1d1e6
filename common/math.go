package common

import "math"

// TimerEpsilon is the remaining time below which a countdown counts as expired.
const TimerEpsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveToward moves current toward target by at most maxDelta and never
// overshoots.
func MoveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Normalize returns the unit vector of (x, y), or (0, 0) for a zero vector.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Armed reports whether a countdown still has time left.
func Armed(t float64) bool {
	return t > TimerEpsilon
}

// Countdown decrements t by dt without going below zero.
func Countdown(t, dt float64) float64 {
	t -= dt
	if t < TimerEpsilon {
		return 0
	}
	return t
}

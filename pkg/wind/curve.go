// Package wind computes wind-sway blend shapes and the weight schedules that animate them.
package wind

// Sway reaches H/SwayDivisor at the top of a mesh of height H.
const SwayDivisor = 8

// HorizontalDelta returns the horizontal sway of a point at height v on a
// mesh of height h. The curve is quadratic in v/h: flat near the base and
// h/8 at the top. Points at or below the origin do not move.
func HorizontalDelta(h, v float64) float64 {
	if h <= 0 || v <= 0 {
		return 0
	}
	f := v / h
	return f * f * h / SwayDivisor
}

// VerticalDelta returns the downward compensation paired with HorizontalDelta.
// It is never positive.
func VerticalDelta(h, v float64) float64 {
	hd := HorizontalDelta(h, v)
	if hd < 0 {
		hd = -hd
	}
	return -hd / 2
}

package mathx

import "golang.org/x/exp/constraints"

// Between reports lo <= v && v <= hi.
func Between[T constraints.Integer](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// RoundDiv returns floor((a + b/2)/b) for non-negative operands, 0 when b is 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// Rescale maps v in [0, from] onto [0, to] with rounding.
// v above from is reported as not ok rather than clamped.
func Rescale[T constraints.Unsigned](v, from, to T) (T, bool) {
	if from == 0 || v > from {
		return 0, false
	}
	return T(RoundDiv(uint64(v)*uint64(to), uint64(from))), true
}

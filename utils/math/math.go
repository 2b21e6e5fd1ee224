package math

import "golang.org/x/exp/constraints"

// DivCeil panics on a zero divisor, like integer division.
func DivCeil[T constraints.Integer](dividend, divisor T) T {
	base := dividend / divisor
	if dividend%divisor == 0 {
		return base
	}
	return base + 1
}

func DivFloor[T constraints.Integer](dividend, divisor T) T {
	return dividend / divisor
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

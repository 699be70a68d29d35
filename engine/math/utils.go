package math

import "golang.org/x/exp/constraints"

// Clamp limits v to the range [low, high]. Shading intensity, camera
// pitch and colour channels all pass through here.
func Clamp[T constraints.Ordered](v, low, high T) T {
	switch {
	case v < low:
		return low
	case v > high:
		return high
	default:
		return v
	}
}

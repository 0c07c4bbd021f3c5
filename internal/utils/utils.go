package utils

import (
	"slices"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

// InRange reports lo <= v <= hi. NaN is never in range.
func InRange[T Number](v, lo, hi T) bool {
	return lo <= v && v <= hi
}

// MinMax returns the extrema of s, skipping values for which skip returns true.
// ok is false when nothing was left.
func MinMax[T Number](s []T, skip func(T) bool) (lo, hi T, ok bool) {
	for i := range s {
		if skip != nil && skip(s[i]) {
			continue
		}
		if !ok {
			lo, hi, ok = s[i], s[i], true
			continue
		}
		lo = min(lo, s[i])
		hi = max(hi, s[i])
	}
	return
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}

package utils

import "math"

const maxBisections = 200

// return the point of the condition support that is not farther than eps from the support boundary
// invariant: at *trueDom* condition must be TRUE
func BinarySearch(condition func(float64) bool, falseDom, trueDom, eps float64) (float64, float64) {
	for i := 0; math.Abs(trueDom-falseDom) > eps && i < maxBisections; i++ {
		c := (falseDom + trueDom) * 0.5
		if condition(c) {
			trueDom = c
		} else {
			falseDom = c
		}
	}
	return falseDom, trueDom
}

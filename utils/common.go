package utils

import "gonum.org/v1/gonum/floats/scalar"

// SPACINGTOL is the relative tolerance for comparing grid spacings.
const SPACINGTOL = 1.e-4

type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

/*
RelEqual compares y against the reference x relative to the magnitude of x.
A zero reference requires an exact match.
*/
func RelEqual(x, y, tol float64) bool {
	return scalar.EqualWithinAbs(x, y, tol*max(x, -x))
}

// Round rounds half away from zero to the nearest int.
func Round(x float64) int {
	return int(scalar.Round(x, 0))
}

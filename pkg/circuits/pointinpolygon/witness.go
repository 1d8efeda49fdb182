// Copyright 2025 zkLocus Contributors

package pointinpolygon

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/geotypes"
)

// EvaluateWitness computes isInside for p against t using exactly the
// same exact-integer formulas Evaluate asserts in-circuit (geometry.go),
// so a prover can determine the correct claimed boolean before invoking
// the circuit -- Define only checks a claimed IsInside, it does not
// compute one.
func EvaluateWitness(p geotypes.Coordinate, t geotypes.Triangle) bool {
	x, y := p.Longitude.SignedValue(), p.Latitude.SignedValue()
	v := [3]geotypes.Coordinate{t.V1, t.V2, t.V3}

	onAnyEdge := false
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		if onEdgeWitness(x, y, a.Longitude.SignedValue(), a.Latitude.SignedValue(), b.Longitude.SignedValue(), b.Latitude.SignedValue()) {
			onAnyEdge = true
		}
	}

	inside := false
	for i := 0; i < 3; i++ {
		j := (i + 2) % 3
		vi, vj := v[i], v[j]
		if rayCastFlipWitness(x, y,
			vi.Longitude.SignedValue(), vi.Latitude.SignedValue(),
			vj.Longitude.SignedValue(), vj.Latitude.SignedValue()) {
			inside = !inside
		}
	}

	return onAnyEdge || inside
}

func onEdgeWitness(x, y, x1, y1, x2, y2 *big.Int) bool {
	minX, maxX := minBig(x1, x2), maxBig(x1, x2)
	minY, maxY := minBig(y1, y2), maxBig(y1, y2)
	if x.Cmp(minX) < 0 || x.Cmp(maxX) > 0 || y.Cmp(minY) < 0 || y.Cmp(maxY) > 0 {
		return false
	}

	lhs := new(big.Int).Mul(new(big.Int).Sub(x2, x1), new(big.Int).Sub(y, y1))
	rhs := new(big.Int).Mul(new(big.Int).Sub(x, x1), new(big.Int).Sub(y2, y1))
	return lhs.Cmp(rhs) == 0
}

func rayCastFlipWitness(x, y, xi, yi, xj, yj *big.Int) bool {
	straddles := (yi.Cmp(y) > 0) != (yj.Cmp(y) > 0)
	if !straddles {
		return false
	}

	d := new(big.Int).Sub(yj, yi)
	n := new(big.Int).Mul(new(big.Int).Sub(xj, xi), new(big.Int).Sub(y, yi))
	lhs := new(big.Int).Mul(d, new(big.Int).Sub(x, xi))

	if d.Sign() > 0 {
		return lhs.Cmp(n) < 0
	}
	return lhs.Cmp(n) > 0
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

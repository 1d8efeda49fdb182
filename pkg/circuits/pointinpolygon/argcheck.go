// Copyright 2025 zkLocus Contributors

package pointinpolygon

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

// pow10Consts are the only eight factor magnitudes spec.md section 3
// permits (f in [0,7]).
var pow10Consts = [8]*big.Int{
	big.NewInt(1), big.NewInt(10), big.NewInt(100), big.NewInt(1000),
	big.NewInt(10000), big.NewInt(100000), big.NewInt(1000000), big.NewInt(10000000),
}

// pow10 returns 10^factor in-circuit as a 3-bit mux over the eight
// constants above, rather than an exponentiation gadget: factor is a
// tiny, fully enumerable public value, so a select tree is both cheaper
// and needs no hint.
func pow10(api frontend.API, factor frontend.Variable) frontend.Variable {
	bits := api.ToBinary(factor, 3)
	b0, b1, b2 := bits[0], bits[1], bits[2]

	var level0 [4]frontend.Variable
	for i := 0; i < 4; i++ {
		level0[i] = api.Select(b0, pow10Consts[2*i+1], pow10Consts[2*i])
	}
	var level1 [2]frontend.Variable
	for i := 0; i < 2; i++ {
		level1[i] = api.Select(b1, level0[2*i+1], level0[2*i])
	}
	return api.Select(b2, level1[1], level1[0])
}

// assertAbsLEQ asserts -bound <= v <= bound, by range-checking v+bound
// against [0, 2*bound]. gnark's AssertIsLessOrEqual treats its operands as
// ordinary non-negative integers, so a value that is "negative" only by
// modular wraparound (rather than by true signed magnitude) fails this
// check, which is exactly the rejection spec.md section 7 calls for.
func assertAbsLEQ(api frontend.API, v, bound frontend.Variable) {
	shifted := api.Add(v, bound)
	api.AssertIsLessOrEqual(0, shifted)
	api.AssertIsLessOrEqual(shifted, api.Mul(bound, 2))
}

// assertValidCoordinate enforces spec.md section 3's per-coordinate bounds:
// |lat| <= 90*10^factor, |lon| <= 180*10^factor.
func assertValidCoordinate(api frontend.API, c geotypes.CoordinateVars, scale frontend.Variable) {
	assertAbsLEQ(api, c.Lat, api.Mul(90, scale))
	assertAbsLEQ(api, c.Lon, api.Mul(180, scale))
}

// assertValidArguments enforces spec.md section 4.1's preflight predicate:
// every vertex (and the query point) shares one factor and lies within the
// coordinate domain, and the triangle is non-degenerate. The last check is
// section 9's recommended strengthening; section 8 allows either outcome
// for a degenerate triangle ("rejected by vertex validation" or
// "consistently OUTSIDE"), and rejecting here satisfies that directly.
func assertValidArguments(api frontend.API, p geotypes.NoncedCoordinateVars, t geotypes.TriangleVars, factor frontend.Variable) {
	api.AssertIsEqual(p.Coord.Factor, factor)
	api.AssertIsEqual(t.V1.Factor, factor)
	api.AssertIsEqual(t.V2.Factor, factor)
	api.AssertIsEqual(t.V3.Factor, factor)

	scale := pow10(api, factor)
	assertValidCoordinate(api, p.Coord, scale)
	for _, v := range t.Vertices() {
		assertValidCoordinate(api, v, scale)
	}

	area2 := signedArea2(api, t)
	api.AssertIsDifferent(area2, 0)
}

// signedArea2 computes twice the triangle's signed area in-circuit, the
// same exact integer formula geotypes.Triangle.SignedArea2 computes out of
// circuit.
func signedArea2(api frontend.API, t geotypes.TriangleVars) frontend.Variable {
	x1, y1 := t.V1.Lon, t.V1.Lat
	x2, y2 := t.V2.Lon, t.V2.Lat
	x3, y3 := t.V3.Lon, t.V3.Lat

	a := api.Mul(api.Sub(x2, x1), api.Sub(y3, y1))
	b := api.Mul(api.Sub(x3, x1), api.Sub(y2, y1))
	return api.Sub(a, b)
}

// Copyright 2025 zkLocus Contributors
//
// Package pointinpolygon implements circuit C3 of spec.md: the in-circuit
// point-in-triangle predicate over fixed-point integer coordinates, and
// the AND/OR recursive combiners over PointInPolygon proofs.
package pointinpolygon

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

// cmpBias shifts every comparison operand into gnark's unsigned comparator
// range before calling api.Cmp/AssertIsLessOrEqual. Those gadgets compare
// field elements as ordinary non-negative integers; a coordinate or
// product that is "negative" is otherwise represented by its canonical
// residue p-|v|, an enormous unsigned number that would compare backwards.
// 2^63 comfortably covers both raw coordinate magnitudes (<= 180*10^7) and
// the cross-multiplied products used below, matching the 64-bit signed
// overflow budget spec.md section 4.2 calls out, while staying negligible
// next to the BN254 scalar field's ~254-bit size.
var cmpBias = new(big.Int).Lsh(big.NewInt(1), 63)

// signedCmp returns -1, 0, or 1 according to the true signed integer order
// of a and b, by biasing both into gnark's non-negative comparison domain.
func signedCmp(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Cmp(api.Add(a, cmpBias), api.Add(b, cmpBias))
}

func boolGT(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.IsZero(api.Sub(signedCmp(api, a, b), 1))
}

func boolLT(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.IsZero(api.Add(signedCmp(api, a, b), 1))
}

func boolLEQ(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Sub(1, boolGT(api, a, b))
}

func boolGEQ(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Sub(1, boolLT(api, a, b))
}

func boolEQ(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.IsZero(api.Sub(a, b))
}

func min(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Select(boolGT(api, a, b), b, a)
}

func max(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Select(boolGT(api, a, b), a, b)
}

// onEdge reports (as a boolean Variable) whether point (x,y) lies on the
// closed segment [(x1,y1),(x2,y2)], per spec.md section 4.2(a): the point
// must fall within both endpoints' bounding box and satisfy the exact
// signed-integer collinearity equality.
func onEdge(api frontend.API, x, y, x1, y1, x2, y2 frontend.Variable) frontend.Variable {
	inXRange := api.And(boolLEQ(api, min(api, x1, x2), x), boolLEQ(api, x, max(api, x1, x2)))
	inYRange := api.And(boolLEQ(api, min(api, y1, y2), y), boolLEQ(api, y, max(api, y1, y2)))
	inBox := api.And(inXRange, inYRange)

	// (x2-x1)*(y-y1) == (x-x1)*(y2-y1)
	lhs := api.Mul(api.Sub(x2, x1), api.Sub(y, y1))
	rhs := api.Mul(api.Sub(x, x1), api.Sub(y2, y1))
	collinear := boolEQ(api, lhs, rhs)

	return api.And(inBox, collinear)
}

// rayCastFlip reports whether the edge (xj,yj)-(xi,yi) contributes a
// parity flip to a horizontal ray cast from (x,y) toward +infinity in x,
// per spec.md section 4.2(b). The quotient-and-compare form from the spec
// ("x < xi + (xj-xi)*(y-yi)/(yj-yi)") is implemented here as its exact
// cross-multiplied equivalent rather than a literal truncating division:
// both forms are presented by the spec as ways to avoid introducing
// rational arithmetic, and the cross-multiplied form is exact (no
// truncation-induced rounding) while sidestepping a division hint's
// sign bookkeeping for the denominator-zero (horizontal edge) case
// entirely -- see DESIGN.md.
func rayCastFlip(api frontend.API, x, y, xi, yi, xj, yj frontend.Variable) frontend.Variable {
	straddles := api.Xor(boolGT(api, yi, y), boolGT(api, yj, y))

	d := api.Sub(yj, yi)
	n := api.Mul(api.Sub(xj, xi), api.Sub(y, yi))
	lhs := api.Mul(d, api.Sub(x, xi))

	dPositive := boolGT(api, d, 0)
	flipIfPositive := boolLT(api, lhs, n) // d>0:  (x-xi) < n/d  <=>  lhs < n
	flipIfNegative := boolGT(api, lhs, n) // d<0:  (x-xi) < n/d  <=>  lhs > n
	rightOfIntersection := api.Select(dPositive, flipIfPositive, flipIfNegative)

	return api.And(straddles, rightOfIntersection)
}

// Evaluate computes isInside for query point p against triangle t,
// combining the edge-membership test and the ray-casting test per
// spec.md section 4.2's final rule: isInside := edge_membership(any edge)
// OR ray_cast_result.
func Evaluate(api frontend.API, p geotypes.CoordinateVars, t geotypes.TriangleVars) frontend.Variable {
	x, y := p.Lon, p.Lat
	v := t.Vertices()

	onAnyEdge := frontend.Variable(0)
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		onAnyEdge = api.Or(onAnyEdge, onEdge(api, x, y, a.Lon, a.Lat, b.Lon, b.Lat))
	}

	inside := frontend.Variable(0)
	for i := 0; i < 3; i++ {
		j := (i + 2) % 3 // (i-1) mod 3
		vi, vj := v[i], v[j]
		inside = api.Xor(inside, rayCastFlip(api, x, y, vi.Lon, vi.Lat, vj.Lon, vj.Lat))
	}

	return api.Or(onAnyEdge, inside)
}

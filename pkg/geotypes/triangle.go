// Copyright 2025 zkLocus Contributors

package geotypes

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Triangle is the only polygon shape proved over directly (spec.md
// section 1 Non-goals: polygons with more than three vertices are
// composed from triangles externally).
type Triangle struct {
	V1, V2, V3 Coordinate
}

// NewTriangle validates that all three vertices are individually valid and
// share one factor, per spec.md section 4.1's preflight predicate.
func NewTriangle(v1, v2, v3 Coordinate) (Triangle, error) {
	t := Triangle{V1: v1, V2: v2, V3: v3}
	if err := t.Validate(); err != nil {
		return Triangle{}, err
	}
	return t, nil
}

// Validate checks each vertex's own domain and that all three vertices
// share a factor. The query point is checked by ValidateAgainstQuery.
func (t Triangle) Validate() error {
	for i, v := range [3]Coordinate{t.V1, t.V2, t.V3} {
		if err := v.Validate(); err != nil {
			return zkerrors.Wrapf(err, zkerrors.CodeInvalidCoordinateDomain, "triangle vertex %d", i+1)
		}
	}
	if t.V1.Factor != t.V2.Factor || t.V1.Factor != t.V3.Factor {
		return zkerrors.New(zkerrors.CodeFactorMismatch, "triangle vertices do not share a factor")
	}
	return nil
}

// ValidateAgainstQuery additionally checks that a query coordinate shares
// the triangle's factor, as spec.md section 4.1 requires before any
// geometric work runs.
func (t Triangle) ValidateAgainstQuery(query Coordinate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if query.Factor != t.V1.Factor {
		return zkerrors.New(zkerrors.CodeFactorMismatch, "query point factor does not match triangle factor")
	}
	return nil
}

// SignedArea2 returns twice the signed area of the triangle (an exact
// integer, since it is a sum of integer products), used to reject
// degenerate (colinear) triangles per spec.md section 9's recommendation.
func (t Triangle) SignedArea2() *big.Int {
	x1, y1 := t.V1.Longitude.SignedValue(), t.V1.Latitude.SignedValue()
	x2, y2 := t.V2.Longitude.SignedValue(), t.V2.Latitude.SignedValue()
	x3, y3 := t.V3.Longitude.SignedValue(), t.V3.Latitude.SignedValue()

	// (x2-x1)*(y3-y1) - (x3-x1)*(y2-y1)
	a := new(big.Int).Mul(new(big.Int).Sub(x2, x1), new(big.Int).Sub(y3, y1))
	b := new(big.Int).Mul(new(big.Int).Sub(x3, x1), new(big.Int).Sub(y2, y1))
	return a.Sub(a, b)
}

// Hash returns Poseidon(Poseidon(v1), Poseidon(v2), Poseidon(v3)), the
// public polygonCommitment (spec.md sections 3 and 6).
func (t Triangle) Hash() *big.Int {
	return fieldhash.Hash(t.V1.Hash(), t.V2.Hash(), t.V3.Hash())
}

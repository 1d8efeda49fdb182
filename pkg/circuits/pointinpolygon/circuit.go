// Copyright 2025 zkLocus Contributors

package pointinpolygon

import (
	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

// Circuit implements C3 of spec.md section 4.2: proof that a committed,
// nonced coordinate lies inside (or on the boundary of) a committed
// triangle, without revealing the coordinate, the nonce, or the triangle's
// vertices.
//
// Public inputs are the two commitments and the resulting boolean, plus
// the shared decimal factor (itself not sensitive: it is a scale, not a
// location). Everything else -- the point, its nonce, and the triangle's
// three vertices -- is private witness.
type Circuit struct {
	Point    geotypes.NoncedCoordinateVars
	Triangle geotypes.TriangleVars

	Factor               frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
	PolygonCommitment    frontend.Variable `gnark:",public"`
	IsInside             frontend.Variable `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	assertValidArguments(api, c.Point, c.Triangle, c.Factor)

	coordCommit, err := c.Point.CommitmentHash(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(coordCommit, c.CoordinateCommitment)

	polyCommit, err := c.Triangle.Hash(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(polyCommit, c.PolygonCommitment)

	isInside := Evaluate(api, c.Point.Coord, c.Triangle)
	api.AssertIsEqual(isInside, c.IsInside)

	return nil
}

// Assignment builds a full witness assignment for Circuit from
// witness-side values. isInside must be computed by the caller (see
// pkg/session, which cross-checks it against the in-circuit predicate by
// construction: proving fails if the claimed value is wrong).
func Assignment(point geotypes.NoncedCoordinate, triangle geotypes.Triangle, isInside bool) Circuit {
	var insideVar frontend.Variable = 0
	if isInside {
		insideVar = 1
	}
	return Circuit{
		Point:                geotypes.AssignNoncedCoordinate(point),
		Triangle:             geotypes.AssignTriangle(triangle),
		Factor:               point.Coord.Factor,
		CoordinateCommitment: point.CommitmentHash(),
		PolygonCommitment:    triangle.Hash(),
		IsInside:             insideVar,
	}
}

// Copyright 2025 zkLocus Contributors
//
// Package geopoint implements circuit C5 of spec.md section 4.7: exact
// coordinate reveal, and metadata commitment binding.
package geopoint

import (
	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

// ExactCircuit proves that Point matches CoordinateCommitment and reveals
// its latitude/longitude/factor publicly -- the deliberate opposite of
// every other zkLocus circuit, used when a consumer has a legitimate need
// to see the plaintext coordinate rather than only a predicate over it
// (spec.md section 4.7).
type ExactCircuit struct {
	Point geotypes.NoncedCoordinateVars

	CoordinateCommitment frontend.Variable `gnark:",public"`
	Latitude             frontend.Variable `gnark:",public"`
	Longitude            frontend.Variable `gnark:",public"`
	Factor               frontend.Variable `gnark:",public"`
}

func (c *ExactCircuit) Define(api frontend.API) error {
	commit, err := c.Point.CommitmentHash(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(commit, c.CoordinateCommitment)
	api.AssertIsEqual(c.Point.Coord.Lat, c.Latitude)
	api.AssertIsEqual(c.Point.Coord.Lon, c.Longitude)
	api.AssertIsEqual(c.Point.Coord.Factor, c.Factor)
	return nil
}

// ExactAssignment builds a full witness assignment for ExactCircuit.
func ExactAssignment(point geotypes.NoncedCoordinate) ExactCircuit {
	return ExactCircuit{
		Point:                geotypes.AssignNoncedCoordinate(point),
		CoordinateCommitment: point.CommitmentHash(),
		Latitude:             point.Coord.Latitude.SignedValue(),
		Longitude:            point.Coord.Longitude.SignedValue(),
		Factor:               point.Coord.Factor,
	}
}

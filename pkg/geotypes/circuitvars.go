// Copyright 2025 zkLocus Contributors
//
// In-circuit counterparts of the witness-side types above. Every circuit
// package (C1-C5) shares these so a coordinate or triangle has exactly one
// in-circuit shape across the whole proof DAG.

package geotypes

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/fieldhash"
)

// CoordinateVars is the in-circuit representation of a Coordinate. Lat and
// Lon carry their sign directly (gnark field elements handle negative
// values as p-|v| under the hood; every arithmetic operation here treats
// them as ordinary signed integers, which is valid as long as magnitudes
// stay far below the field's bit length, see spec.md section 4.2's
// overflow budget).
type CoordinateVars struct {
	Lat    frontend.Variable
	Lon    frontend.Variable
	Factor frontend.Variable
}

// AssignCoordinate converts a witness-side Coordinate into a circuit
// assignment.
func AssignCoordinate(c Coordinate) CoordinateVars {
	return CoordinateVars{
		Lat:    c.Latitude.SignedValue(),
		Lon:    c.Longitude.SignedValue(),
		Factor: big.NewInt(int64(c.Factor)),
	}
}

// Hash computes Poseidon(lat, lon, factor) in-circuit.
func (c CoordinateVars) Hash(api frontend.API) (frontend.Variable, error) {
	return fieldhash.InCircuit(api, c.Lat, c.Lon, c.Factor)
}

// NoncedCoordinateVars is the in-circuit representation of a
// NoncedCoordinate.
type NoncedCoordinateVars struct {
	Coord CoordinateVars
	Nonce frontend.Variable
}

// AssignNoncedCoordinate converts a witness-side NoncedCoordinate into a
// circuit assignment.
func AssignNoncedCoordinate(n NoncedCoordinate) NoncedCoordinateVars {
	return NoncedCoordinateVars{Coord: AssignCoordinate(n.Coord), Nonce: n.Nonce}
}

// CommitmentHash computes Poseidon(Poseidon(lat,lon,factor), nonce)
// in-circuit, the public coordinateCommitment.
func (n NoncedCoordinateVars) CommitmentHash(api frontend.API) (frontend.Variable, error) {
	inner, err := n.Coord.Hash(api)
	if err != nil {
		return nil, err
	}
	return fieldhash.InCircuit(api, inner, n.Nonce)
}

// TriangleVars is the in-circuit representation of a Triangle.
type TriangleVars struct {
	V1, V2, V3 CoordinateVars
}

// AssignTriangle converts a witness-side Triangle into a circuit
// assignment.
func AssignTriangle(t Triangle) TriangleVars {
	return TriangleVars{
		V1: AssignCoordinate(t.V1),
		V2: AssignCoordinate(t.V2),
		V3: AssignCoordinate(t.V3),
	}
}

// Hash computes Poseidon(Poseidon(v1), Poseidon(v2), Poseidon(v3))
// in-circuit, the public polygonCommitment.
func (t TriangleVars) Hash(api frontend.API) (frontend.Variable, error) {
	h1, err := t.V1.Hash(api)
	if err != nil {
		return nil, err
	}
	h2, err := t.V2.Hash(api)
	if err != nil {
		return nil, err
	}
	h3, err := t.V3.Hash(api)
	if err != nil {
		return nil, err
	}
	return fieldhash.InCircuit(api, h1, h2, h3)
}

// Vertices returns the triangle's three vertices as a fixed-size array,
// convenient for the edge-iteration loops in pkg/circuits/pointinpolygon.
func (t TriangleVars) Vertices() [3]CoordinateVars {
	return [3]CoordinateVars{t.V1, t.V2, t.V3}
}

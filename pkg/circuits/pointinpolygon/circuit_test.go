// Copyright 2025 zkLocus Contributors

package pointinpolygon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

func buildNoncedQuery(t *testing.T, lat, lon int64, factor int) geotypes.NoncedCoordinate {
	t.Helper()
	coord, err := geotypes.NewCoordinate(lat, lon, factor)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	n, err := geotypes.NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}
	return n
}

// TestCircuitSolvesForCorrectClaim checks the in-circuit predicate agrees
// with EvaluateWitness on both an interior and an exterior point, the way
// pkg/session constructs an assignment in production.
func TestCircuitSolvesForCorrectClaim(t *testing.T) {
	factor := 4
	tri := referenceTriangle(t)

	tests := []struct {
		name     string
		lat, lon int64
	}{
		{"interior point", 500, 500},
		{"exterior point", 4000, 4000},
		{"vertex point", 0, 0},
		{"on hypotenuse", 2500, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := buildNoncedQuery(t, tt.lat, tt.lon, factor)
			claimed := EvaluateWitness(query.Coord, tri)

			var circuit Circuit
			assignment := Assignment(query, tri, claimed)

			if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err != nil {
				t.Errorf("IsSolved with correct claim (%v) failed: %v", claimed, err)
			}
		})
	}
}

// TestCircuitRejectsWrongClaim checks the circuit refuses to solve when
// the claimed IsInside disagrees with the true predicate.
func TestCircuitRejectsWrongClaim(t *testing.T) {
	factor := 4
	tri := referenceTriangle(t)

	query := buildNoncedQuery(t, 500, 500, factor) // a true interior point
	if !EvaluateWitness(query.Coord, tri) {
		t.Fatal("test setup assumption violated: query should be inside")
	}

	var circuit Circuit
	assignment := Assignment(query, tri, false) // wrong claim

	if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved with a false claim on a true-inside point succeeded, want failure")
	}
}

// TestCircuitRejectsDegenerateTriangle checks the nonzero-area assertion
// rejects a colinear triangle regardless of the claimed boolean.
func TestCircuitRejectsDegenerateTriangle(t *testing.T) {
	factor := 4
	degenerate, err := geotypes.NewTriangle(
		mustCoordinate(t, 0, 0, factor),
		mustCoordinate(t, 0, 10, factor),
		mustCoordinate(t, 0, 20, factor),
	)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}

	query := buildNoncedQuery(t, 0, 5, factor)
	claimed := EvaluateWitness(query.Coord, degenerate)

	var circuit Circuit
	assignment := Assignment(query, degenerate, claimed)

	if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved on a degenerate (colinear) triangle succeeded, want rejection by the nonzero-area assertion")
	}
}

// TestCircuitRejectsFactorMismatch checks the circuit refuses a public
// Factor that disagrees with the query point's own embedded factor.
func TestCircuitRejectsFactorMismatch(t *testing.T) {
	factor := 4
	tri := referenceTriangle(t)
	query := buildNoncedQuery(t, 500, 500, factor)
	claimed := EvaluateWitness(query.Coord, tri)

	var circuit Circuit
	assignment := Assignment(query, tri, claimed)
	assignment.Factor = factor + 1 // tamper with the public factor only

	if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved with a tampered public Factor succeeded, want rejection")
	}
}

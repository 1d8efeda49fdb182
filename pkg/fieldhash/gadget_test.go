// Copyright 2025 zkLocus Contributors

package fieldhash

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

// hashCheckCircuit asserts that InCircuit(A, B, C) equals the publicly
// claimed Want, letting TestInCircuitMatchesOutOfCircuitHash cross-check
// the in-circuit gadget against the witness-side Hash function.
type hashCheckCircuit struct {
	A, B, C frontend.Variable
	Want    frontend.Variable `gnark:",public"`
}

func (c *hashCheckCircuit) Define(api frontend.API) error {
	got, err := InCircuit(api, c.A, c.B, c.C)
	if err != nil {
		return err
	}
	api.AssertIsEqual(got, c.Want)
	return nil
}

func TestInCircuitMatchesOutOfCircuitHash(t *testing.T) {
	a, b, c := big.NewInt(11), big.NewInt(22), big.NewInt(33)
	want := Hash(a, b, c)

	var circuit hashCheckCircuit
	assignment := &hashCheckCircuit{A: a, B: b, C: c, Want: want}

	if err := test.IsSolved(&circuit, assignment, ecc.BN254.ScalarField()); err != nil {
		t.Errorf("IsSolved with the matching out-of-circuit hash failed: %v", err)
	}
}

func TestInCircuitRejectsWrongClaim(t *testing.T) {
	a, b, c := big.NewInt(11), big.NewInt(22), big.NewInt(33)

	var circuit hashCheckCircuit
	assignment := &hashCheckCircuit{A: a, B: b, C: c, Want: big.NewInt(0)}

	if err := test.IsSolved(&circuit, assignment, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved with a wrong claimed hash succeeded, want rejection")
	}
}

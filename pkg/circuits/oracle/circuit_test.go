// Copyright 2025 zkLocus Contributors

package oracle

import (
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/zklocus/zklocus/pkg/geotypes"
)

func TestCircuitSolvesForGenuineAttestation(t *testing.T) {
	key, err := GenerateKeyPairFrom(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPairFrom: %v", err)
	}

	coord, err := geotypes.NewCoordinate(378977, -1224194, 4)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	nonced, err := geotypes.NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}

	assignment, err := Assignment(key, nonced)
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}

	var circuit Circuit
	if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err != nil {
		t.Errorf("IsSolved with a genuine attestation failed: %v", err)
	}
}

func TestCircuitRejectsTamperedCoordinateCommitment(t *testing.T) {
	key, err := GenerateKeyPairFrom(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPairFrom: %v", err)
	}

	coord, err := geotypes.NewCoordinate(0, 0, 0)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	nonced, err := geotypes.NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}

	assignment, err := Assignment(key, nonced)
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	// Tamper with the public commitment only -- the signature was computed
	// over the original message, so this should no longer match what the
	// circuit recomputes from Coordinate and re-verifies the signature over.
	assignment.CoordinateCommitment = 12345

	var circuit Circuit
	if err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved with a tampered coordinate commitment succeeded, want rejection")
	}
}

func TestCircuitRejectsSignatureFromAnotherKey(t *testing.T) {
	signer, err := GenerateKeyPairFrom(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPairFrom: %v", err)
	}
	impostor, err := GenerateKeyPairFrom(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPairFrom: %v", err)
	}

	coord, err := geotypes.NewCoordinate(10, 10, 0)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	nonced, err := geotypes.NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}

	// Build a genuine assignment under signer, then graft in impostor's
	// public key commitment and key material -- the signature still only
	// verifies under signer's key, so the circuit should reject.
	signerAssignment, err := Assignment(signer, nonced)
	if err != nil {
		t.Fatalf("Assignment (signer): %v", err)
	}
	impostorAssignment, err := Assignment(impostor, nonced)
	if err != nil {
		t.Fatalf("Assignment (impostor): %v", err)
	}

	tampered := signerAssignment
	tampered.PublicKey = impostorAssignment.PublicKey
	tampered.PublicKeyCommitment = impostorAssignment.PublicKeyCommitment

	var circuit Circuit
	if err := test.IsSolved(&circuit, &tampered, ecc.BN254.ScalarField()); err == nil {
		t.Error("IsSolved with an impostor public key succeeded, want rejection")
	}
}

// Copyright 2025 zkLocus Contributors
//
// Package provider implements circuit C2 of spec.md section 4.6: a
// canonical "coordinate provider" proof that recursively verifies an
// inner attestation proof (today, only C1 OracleAttestation) and
// republishes its coordinate commitment under one stable public shape.
// The only circuit that recursively verifies a provider proof is
// geopoint.MetadataCircuit; pointinpolygon.Circuit, the rollup circuits
// and geopoint.ExactCircuit do not verify one.
package provider

import (
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"github.com/zklocus/zklocus/pkg/recur"
)

// SourceOracle is the only provider kind zkLocus wires in today (an
// oracle.Circuit attestation). Spec.md section 4.6 leaves room for
// additional source kinds (e.g. a future hardware-attested GPS reading);
// Kind exists so a later provider can be added without changing
// Circuit's shape, by widening this enum and branching Define on it.
type Kind = uint8

const (
	SourceOracle Kind = iota
)

// Circuit recursively verifies one inner provider-source proof and
// republishes its coordinate commitment and factor as its own public
// output, plus a SourceKind tag identifying which provider produced it.
type Circuit struct {
	Inner recur.InnerProof

	SourceKind           frontend.Variable `gnark:",public"`
	Factor               frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
}

// Inner proof public-input layout for oracle.Circuit: Factor,
// PublicKeyCommitment, CoordinateCommitment (see oracle.Circuit's field
// declaration order).
const (
	oraclePubFactor = iota
	oraclePubPublicKeyCommitment
	oraclePubCoordinateCommitment
)

func (c *Circuit) Define(api frontend.API) error {
	if err := recur.AssertValid(api, c.Inner); err != nil {
		return err
	}

	api.AssertIsEqual(c.SourceKind, SourceOracle)

	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, oraclePubFactor, c.Factor); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, oraclePubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return err
	}

	return nil
}

// Assignment builds a full witness assignment for Circuit from the raw
// Groth16 artifacts of an inner oracle.Circuit proof.
func Assignment(innerProof groth16.Proof, innerWitness witness.Witness, innerVK groth16.VerifyingKey, factor, coordinateCommitment frontend.Variable) (*Circuit, error) {
	inner, err := recur.AssignInner(innerProof, innerWitness, innerVK)
	if err != nil {
		return nil, err
	}
	return &Circuit{
		Inner:                inner,
		SourceKind:           SourceOracle,
		Factor:               factor,
		CoordinateCommitment: coordinateCommitment,
	}, nil
}

// Copyright 2025 zkLocus Contributors
//
// Package recur provides the recursive-verification building block every
// combiner circuit in zkLocus (AND, OR, InOrOutRollup combine) is built
// from: asserting, inside one BN254 circuit, that a Groth16 proof over
// another BN254 circuit verifies.
//
// zkLocus keeps every circuit -- leaf predicates and combiners alike -- on
// the same scalar field (BN254) rather than alternating between an inner
// and an outer curve the way a two-chain recursion scheme would. A
// combiner built with a strict inner/outer split can only absorb proofs
// from the "inner" layer, capping composition depth at one hop; zkLocus's
// AND/OR/rollup trees need to combine combiners' own outputs arbitrarily
// deep (spec.md section 4.3/4.4). Self-recursion through gnark's
// non-native sw_bn254 pairing emulation costs more constraints per hop
// than a genuine two-chain curve pair would, but it removes the depth
// cap, which the spec requires.
package recur

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	"github.com/consensys/gnark/std/math/emulated"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"
)

// Proof, Witness and VerifyingKey are the in-circuit shapes of a proof
// over another BN254 circuit, parameterized the same way gnark's own
// recursion package is, but pinned to sw_bn254 since every zkLocus circuit
// shares one curve.
type (
	Proof         = stdgroth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	Witness       = stdgroth16.Witness[sw_bn254.ScalarField]
	VerifyingKey  = stdgroth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl]
)

// InnerProof bundles one recursively-verifiable proof instance: its
// proof, public witness and verifying key. The inner circuit's constraint
// system is not stored here; Placeholder takes it as an argument.
type InnerProof struct {
	Proof   Proof
	Witness Witness
	VK      VerifyingKey
}

// Placeholder returns zero-valued in-circuit proof/witness/VK shapes sized
// to innerCCS, for use as a combiner circuit's field values during
// compilation (before a concrete witness is known).
func Placeholder(innerCCS constraint.ConstraintSystem) InnerProof {
	return InnerProof{
		Proof:   stdgroth16.PlaceholderProof[sw_bn254.G1Affine, sw_bn254.G2Affine](innerCCS),
		Witness: stdgroth16.PlaceholderWitness[sw_bn254.ScalarField](innerCCS),
		VK:      stdgroth16.PlaceholderVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](innerCCS),
	}
}

// AssignInner converts a concrete Groth16 proof/witness/VK (produced by
// pkg/snark over some inner circuit) into the in-circuit values a
// combiner's Define method assigns into its InnerProof fields.
func AssignInner(proof groth16.Proof, pubWitness witness.Witness, vk groth16.VerifyingKey) (InnerProof, error) {
	p, err := stdgroth16.ValueOfProof[sw_bn254.G1Affine, sw_bn254.G2Affine](proof)
	if err != nil {
		return InnerProof{}, fmt.Errorf("convert inner proof: %w", err)
	}
	w, err := stdgroth16.ValueOfWitness[sw_bn254.ScalarField](pubWitness)
	if err != nil {
		return InnerProof{}, fmt.Errorf("convert inner witness: %w", err)
	}
	k, err := stdgroth16.ValueOfVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](vk)
	if err != nil {
		return InnerProof{}, fmt.Errorf("convert inner verifying key: %w", err)
	}
	return InnerProof{Proof: p, Witness: w, VK: k}, nil
}

// AssertValid asserts, inside the enclosing circuit, that inner verifies:
// a Groth16 proof for some other zkLocus circuit, compiled over the same
// BN254 scalar field.
func AssertValid(api frontend.API, inner InnerProof) error {
	verifier, err := stdgroth16.NewVerifier[sw_bn254.ScalarField, sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](api)
	if err != nil {
		return fmt.Errorf("build recursive verifier: %w", err)
	}
	if err := verifier.AssertProof(inner.VK, inner.Proof, inner.Witness, stdgroth16.WithCompleteArithmetic()); err != nil {
		return fmt.Errorf("verify inner proof: %w", err)
	}
	return nil
}

// BindPublicElement asserts that a recursively-verified inner proof's
// emulated public input at position idx equals a native value from the
// enclosing circuit. zkLocus's commitments are full-width Poseidon
// outputs, so (unlike a single-limb shortcut) the comparison goes through
// gnark's emulated field API to cover every limb.
func BindPublicElement(api frontend.API, public []emulated.Element[sw_bn254.ScalarField], idx int, native frontend.Variable) error {
	field, err := emulated.NewField[sw_bn254.ScalarField](api)
	if err != nil {
		return err
	}
	want := field.NewElement(native)
	field.AssertIsEqual(&public[idx], want)
	return nil
}

// ProverOptions returns the backend.ProverOption needed when proving a
// combiner circuit that recursively verifies a BN254 proof from within a
// BN254 circuit (self-recursion uses the same scalar field for both
// "outer" and "inner" slots of gnark's native-prover-options helper).
func ProverOptions() backend.ProverOption {
	return stdgroth16.GetNativeProverOptions(ecc.BN254.ScalarField(), ecc.BN254.ScalarField())
}

// VerifierOptions mirrors ProverOptions for verification.
func VerifierOptions() backend.VerifierOption {
	return stdgroth16.GetNativeVerifierOptions(ecc.BN254.ScalarField(), ecc.BN254.ScalarField())
}

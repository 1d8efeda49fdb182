// Copyright 2025 zkLocus Contributors
//
// Package snark generalizes the compile/setup/prove/verify lifecycle
// shared by every zkLocus circuit (C1-C5 and their combinators) into one
// reusable Prover, rather than hand-rolling the same
// Initialize/SaveKeys/GenerateProof/VerifyProofLocally sequence once per
// circuit kind.
package snark

import (
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// curveID is the scalar field every zkLocus circuit compiles over
// (pkg/recur's self-recursion design keeps leaf and combinator circuits
// on one curve).
const curveID = ecc.BN254

// Prover owns one circuit kind's compiled constraint system and Groth16
// key pair, and generates/verifies proofs against it. A zero Prover must
// be initialized with Setup or LoadKeys before use.
type Prover struct {
	mu sync.RWMutex

	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey

	initialized bool
}

// NewProver returns an uninitialized Prover.
func NewProver() *Prover {
	return &Prover{}
}

// Setup compiles placeholder (a zero-valued instance of the target
// circuit, sized appropriately for any recursively-verified inner proofs
// it embeds) and runs the Groth16 trusted setup. This is the expensive,
// one-time path; production deployments should run it once and persist
// the result with SaveKeys.
func (p *Prover) Setup(placeholder frontend.Circuit) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	cs, err := frontend.Compile(curveID.ScalarField(), r1cs.NewBuilder, placeholder)
	if err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "compile circuit")
	}
	p.cs = cs

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "groth16 setup")
	}
	p.pk = pk
	p.vk = vk
	p.initialized = true
	return nil
}

// LoadKeys restores a previously-saved constraint system, proving key and
// verifying key from disk, skipping the trusted setup.
func (p *Prover) LoadKeys(csPath, pkPath, vkPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	cs := groth16.NewCS(curveID)
	if err := readFrom(csPath, cs); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "read constraint system")
	}
	p.cs = cs

	pk := groth16.NewProvingKey(curveID)
	if err := readFrom(pkPath, pk); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "read proving key")
	}
	p.pk = pk

	vk := groth16.NewVerifyingKey(curveID)
	if err := readFrom(vkPath, vk); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "read verifying key")
	}
	p.vk = vk

	p.initialized = true
	return nil
}

// SaveKeys persists the compiled constraint system and Groth16 keys to
// disk for a later LoadKeys call.
func (p *Prover) SaveKeys(csPath, pkPath, vkPath string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return zkerrors.New(zkerrors.CodeProverFailure, "prover not initialized")
	}

	if err := writeTo(csPath, p.cs); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "write constraint system")
	}
	if err := writeTo(pkPath, p.pk); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "write proving key")
	}
	if err := writeTo(vkPath, p.vk); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "write verifying key")
	}
	return nil
}

// Result bundles a generated proof with the public witness a verifier
// (local or a downstream combinator's recursive verifier) needs.
type Result struct {
	Proof         groth16.Proof
	PublicWitness witness.Witness
}

// Prove builds the full witness from assignment, generates a Groth16
// proof, and returns it alongside the public-only witness a combinator
// circuit will recursively verify against.
func (p *Prover) Prove(assignment frontend.Circuit, opts ...backend.ProverOption) (Result, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return Result{}, zkerrors.New(zkerrors.CodeProverFailure, "prover not initialized")
	}

	fullWitness, err := frontend.NewWitness(assignment, curveID.ScalarField())
	if err != nil {
		return Result{}, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "build witness")
	}

	proof, err := groth16.Prove(p.cs, p.pk, fullWitness, opts...)
	if err != nil {
		return Result{}, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "generate proof")
	}

	publicWitness, err := fullWitness.Public()
	if err != nil {
		return Result{}, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "derive public witness")
	}

	return Result{Proof: proof, PublicWitness: publicWitness}, nil
}

// VerifyLocally verifies a proof against this Prover's own verifying key,
// independent of whether it will later be consumed recursively by a
// combinator circuit.
func (p *Prover) VerifyLocally(proof groth16.Proof, publicWitness witness.Witness, opts ...backend.VerifierOption) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return zkerrors.New(zkerrors.CodeProverFailure, "prover not initialized")
	}
	if err := groth16.Verify(proof, p.vk, publicWitness, opts...); err != nil {
		return zkerrors.Wrap(err, zkerrors.CodeProverFailure, "verify proof")
	}
	return nil
}

// VerifyingKey returns the Prover's Groth16 verifying key, for embedding
// into a combinator circuit's witness via pkg/recur.AssignInner.
func (p *Prover) VerifyingKey() groth16.VerifyingKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vk
}

// ConstraintSystem returns the Prover's compiled constraint system, for
// sizing a combinator circuit's placeholder proof via pkg/recur.Placeholder.
func (p *Prover) ConstraintSystem() constraint.ConstraintSystem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cs
}

type readerFrom interface {
	ReadFrom(r *os.File) (int64, error)
}

type writerTo interface {
	WriteTo(w *os.File) (int64, error)
}

func readFrom(path string, dst readerFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = dst.ReadFrom(f)
	return err
}

func writeTo(path string, src writerTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = src.WriteTo(f)
	return err
}

// Copyright 2025 zkLocus Contributors

package session

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/circuits/rollup"
	"github.com/zklocus/zklocus/pkg/recur"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Rollup folds the previously-proven PointInPolygon-family results under
// labels into the Session's running InOrOutAccumulator (C4, spec.md
// section 4.4): the first label is lifted in with rollup.LiftCircuit, and
// each subsequent label is lifted and folded in with rollup.CombineCircuit,
// left to right. It returns the accumulator's insideCommitment and
// outsideCommitment -- each zero while its side has folded in nothing,
// otherwise a Poseidon fold over the polygon commitments that landed on
// that side -- after folding in every label given across every call made
// so far on this Session (the accumulator persists between calls, so
// Rollup may be invoked incrementally as new polygon proofs are
// produced).
func (s *Session) Rollup(labels ...string) (insideCommitment, outsideCommitment *big.Int, err error) {
	if err := s.requireAuthenticated(); err != nil {
		return nil, nil, err
	}
	if len(labels) == 0 {
		return nil, nil, zkerrors.New(zkerrors.CodeMissingProofSet, "rollup requested with an empty proof list")
	}

	factor := big.NewInt(int64(s.coordinate.Coord.Factor))
	coordCommit := s.coordinate.CommitmentHash()

	for _, label := range labels {
		idx, err := s.findProof(label)
		if err != nil {
			return nil, nil, err
		}
		leaf := s.proofs[idx]

		if s.accumulator == nil {
			liftProver, err := s.registry.Get(ProverRollupLift)
			if err != nil {
				return nil, nil, err
			}
			circuit, err := rollup.LiftAssignment(
				leaf.proof.Proof, leaf.proof.PublicWitness, leaf.vk,
				factor, coordCommit, leaf.polygonCommitment, leaf.isInside,
			)
			if err != nil {
				return nil, nil, err
			}
			result, err := liftProver.Prove(circuit, recur.ProverOptions())
			if err != nil {
				s.record("rollup:lift:"+label, "proof failed: "+err.Error())
				return nil, nil, err
			}
			s.accumulator = &accumulatorState{
				proof: result, vk: liftProver.VerifyingKey(),
				insideCommitment: circuit.InsideCommitment.(*big.Int), outsideCommitment: circuit.OutsideCommitment.(*big.Int),
			}
			s.record("rollup:lift:"+label, accumulatorDetail(s.accumulator.insideCommitment, s.accumulator.outsideCommitment))
			continue
		}

		liftProver, err := s.registry.Get(ProverRollupLift)
		if err != nil {
			return nil, nil, err
		}
		liftCircuit, err := rollup.LiftAssignment(
			leaf.proof.Proof, leaf.proof.PublicWitness, leaf.vk,
			factor, coordCommit, leaf.polygonCommitment, leaf.isInside,
		)
		if err != nil {
			return nil, nil, err
		}
		liftResult, err := liftProver.Prove(liftCircuit, recur.ProverOptions())
		if err != nil {
			s.record("rollup:lift:"+label, "proof failed: "+err.Error())
			return nil, nil, err
		}

		combineProver, err := s.registry.Get(ProverRollupCombine)
		if err != nil {
			return nil, nil, err
		}
		combineCircuit, err := rollup.CombineAssignment(rollup.CombineWitnessInputs{
			LeftProof: s.accumulator.proof.Proof, LeftWitness: s.accumulator.proof.PublicWitness, LeftVK: s.accumulator.vk,
			RightProof: liftResult.Proof, RightWitness: liftResult.PublicWitness, RightVK: liftProver.VerifyingKey(),
		}, factor, coordCommit, s.accumulator.insideCommitment, s.accumulator.outsideCommitment, liftCircuit.InsideCommitment.(*big.Int), liftCircuit.OutsideCommitment.(*big.Int))
		if err != nil {
			return nil, nil, err
		}
		combineResult, err := combineProver.Prove(combineCircuit, recur.ProverOptions())
		if err != nil {
			s.record("rollup:combine:"+label, "proof failed: "+err.Error())
			return nil, nil, err
		}

		newInside := combineCircuit.InsideCommitment.(*big.Int)
		newOutside := combineCircuit.OutsideCommitment.(*big.Int)
		s.accumulator = &accumulatorState{
			proof: combineResult, vk: combineProver.VerifyingKey(),
			insideCommitment: newInside, outsideCommitment: newOutside,
		}
		s.record("rollup:combine:"+label, accumulatorDetail(newInside, newOutside))
	}

	return s.accumulator.insideCommitment, s.accumulator.outsideCommitment, nil
}

func accumulatorDetail(insideCommitment, outsideCommitment *big.Int) string {
	anyInside := insideCommitment.Sign() != 0
	anyOutside := outsideCommitment.Sign() != 0
	switch {
	case anyInside && !anyOutside:
		return "anyInside=true anyOutside=false"
	case !anyInside && anyOutside:
		return "anyInside=false anyOutside=true"
	case !anyInside && !anyOutside:
		return "anyInside=false anyOutside=false"
	default:
		return "anyInside=true anyOutside=true"
	}
}

// Copyright 2025 zkLocus Contributors

package session

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/circuits/pointinpolygon"
	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/recur"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// CombineProofs recursively verifies the two previously-proven
// PointInPolygon-family results under leftLabel and rightLabel, combines
// them with op, and records the result under resultLabel so it can itself
// be combined further -- spec.md section 4.3's AND/OR trees compose to
// arbitrary depth.
func (s *Session) CombineProofs(op CombineOp, leftLabel, rightLabel, resultLabel string) (bool, error) {
	if err := s.requireAuthenticated(); err != nil {
		return false, err
	}

	li, err := s.findProof(leftLabel)
	if err != nil {
		return false, err
	}
	ri, err := s.findProof(rightLabel)
	if err != nil {
		return false, err
	}
	left, right := s.proofs[li], s.proofs[ri]

	if left.polygonCommitment.Cmp(right.polygonCommitment) == 0 {
		return false, zkerrors.New(zkerrors.CodeDuplicatePolygon, "cannot combine a proof with itself (same polygon commitment)")
	}
	if op == OpAnd && left.isInside != right.isInside {
		return false, zkerrors.New(zkerrors.CodePolarityMismatch, "AND requires both proofs to share the same inside/outside polarity")
	}

	proverName := ProverAnd
	if op == OpOr {
		proverName = ProverOr
	}
	prover, err := s.registry.Get(proverName)
	if err != nil {
		return false, err
	}

	in := pointinpolygon.CombineWitnessInputs{
		LeftProof: left.proof.Proof, RightProof: right.proof.Proof,
		LeftWitness: left.proof.PublicWitness, RightWitness: right.proof.PublicWitness,
		LeftVK: left.vk, RightVK: right.vk,
	}

	var combined bool
	switch op {
	case OpAnd:
		combined = left.isInside && right.isInside
	case OpOr:
		combined = left.isInside || right.isInside
	default:
		return false, zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "unknown combine op %d", op)
	}

	factor := big.NewInt(int64(s.coordinate.Coord.Factor))
	coordCommit := s.coordinate.CommitmentHash()

	var assignErr error
	polygonCommitment := fieldhash.Hash(left.polygonCommitment, right.polygonCommitment)

	switch op {
	case OpAnd:
		circuitAssignment, err := pointinpolygon.AndAssignment(in, factor, coordCommit, left.polygonCommitment, right.polygonCommitment, combined)
		if err != nil {
			assignErr = err
			break
		}
		proveResult, err := prover.Prove(circuitAssignment, recur.ProverOptions())
		if err != nil {
			s.record("combine:"+resultLabel, "proof failed: "+err.Error())
			return false, err
		}
		s.proofs = append(s.proofs, polygonProof{
			label: resultLabel, polygonCommitment: polygonCommitment,
			isInside: combined, proof: proveResult, vk: prover.VerifyingKey(),
		})
	case OpOr:
		circuitAssignment, err := pointinpolygon.OrAssignment(in, factor, coordCommit, left.polygonCommitment, right.polygonCommitment, combined)
		if err != nil {
			assignErr = err
			break
		}
		proveResult, err := prover.Prove(circuitAssignment, recur.ProverOptions())
		if err != nil {
			s.record("combine:"+resultLabel, "proof failed: "+err.Error())
			return false, err
		}
		s.proofs = append(s.proofs, polygonProof{
			label: resultLabel, polygonCommitment: polygonCommitment,
			isInside: combined, proof: proveResult, vk: prover.VerifyingKey(),
		})
	}
	if assignErr != nil {
		return false, assignErr
	}

	s.fold.Append(polygonCommitment)
	s.record("combine:"+resultLabel, boolResult(combined))
	return combined, nil
}

// CombinePointInPolygonProofs folds op across labels left-to-right:
// ((labels[0] op labels[1]) op labels[2]) op ..., per spec.md section
// 4.4's ordered fold-left combination rule. Each intermediate result is
// recorded under a synthesized label so it remains available for further
// combination.
func (s *Session) CombinePointInPolygonProofs(op CombineOp, labels ...string) (bool, error) {
	if len(labels) < 2 {
		return false, zkerrors.New(zkerrors.CodeInsufficientProofs, "combining requires at least two proofs")
	}

	acc := labels[0]
	for i := 1; i < len(labels); i++ {
		resultLabel := acc + "+" + labels[i]
		result, err := s.CombineProofs(op, acc, labels[i], resultLabel)
		if err != nil {
			return false, err
		}
		acc = resultLabel
		_ = result
	}

	final, err := s.findProof(acc)
	if err != nil {
		return false, err
	}
	return s.proofs[final].isInside, nil
}

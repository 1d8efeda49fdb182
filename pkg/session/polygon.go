// Copyright 2025 zkLocus Contributors

package session

import (
	"github.com/zklocus/zklocus/pkg/circuits/pointinpolygon"
	"github.com/zklocus/zklocus/pkg/geotypes"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// InPolygon proves C3 (pointinpolygon.Circuit) for the authenticated
// coordinate against triangle, returning the resulting boolean. The proof
// is kept internally under label, in call order, so later CombineProofs
// and Rollup calls can look it up by that label and recursively verify
// it; label also names the step in History.
func (s *Session) InPolygon(label string, triangle geotypes.Triangle) (bool, error) {
	if err := s.requireAuthenticated(); err != nil {
		return false, err
	}
	if err := triangle.ValidateAgainstQuery(s.coordinate.Coord); err != nil {
		s.record("inPolygon:"+label, "rejected: "+err.Error())
		return false, err
	}

	isInside := pointinpolygon.EvaluateWitness(s.coordinate.Coord, triangle)

	prover, err := s.registry.Get(ProverPointInPolygon)
	if err != nil {
		return false, err
	}
	circuit := pointinpolygon.Assignment(*s.coordinate, triangle, isInside)
	result, err := prover.Prove(&circuit)
	if err != nil {
		s.record("inPolygon:"+label, "proof failed: "+err.Error())
		return false, err
	}

	s.proofs = append(s.proofs, polygonProof{
		label:             label,
		polygonCommitment: triangle.Hash(),
		isInside:          isInside,
		proof:             result,
		vk:                prover.VerifyingKey(),
	})
	s.fold.Append(triangle.Hash())

	s.record("inPolygon:"+label, boolResult(isInside))
	return isInside, nil
}

// InPolygons proves InPolygon for each triangle in order, per spec.md
// section 5's sequential-consistency requirement: triangles are proved
// strictly one after another (not concurrently), and a failure on any one
// stops the remaining ones from starting.
func (s *Session) InPolygons(labels []string, triangles []geotypes.Triangle) ([]bool, error) {
	if len(labels) != len(triangles) {
		return nil, zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "labels (%d) and triangles (%d) length mismatch", len(labels), len(triangles))
	}

	results := make([]bool, 0, len(triangles))
	for i, t := range triangles {
		inside, err := s.InPolygon(labels[i], t)
		if err != nil {
			return results, err
		}
		results = append(results, inside)
	}
	return results, nil
}

func (s *Session) findProof(label string) (int, error) {
	for i, p := range s.proofs {
		if p.label == label {
			return i, nil
		}
	}
	return -1, zkerrors.Newf(zkerrors.CodeMissingProofSet, "no proof recorded under label %q", label)
}

func boolResult(b bool) string {
	if b {
		return "inside"
	}
	return "outside"
}

// Copyright 2025 zkLocus Contributors

package session

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/circuits/geopoint"
	"github.com/zklocus/zklocus/pkg/geotypes"
	"github.com/zklocus/zklocus/pkg/recur"
)

// ExactGeoPoint proves C5's exact-reveal circuit (geopoint.ExactCircuit)
// for the authenticated coordinate, returning the plaintext Coordinate it
// just proved matches CoordinateCommitment -- the one zkLocus operation
// that deliberately discloses rather than hides (spec.md section 4.7).
func (s *Session) ExactGeoPoint() (geotypes.Coordinate, error) {
	if err := s.requireAuthenticated(); err != nil {
		return geotypes.Coordinate{}, err
	}

	prover, err := s.registry.Get(ProverExactGeoPoint)
	if err != nil {
		return geotypes.Coordinate{}, err
	}

	circuit := geopoint.ExactAssignment(*s.coordinate)
	if _, err := prover.Prove(&circuit); err != nil {
		s.record("exactGeoPoint", "proof failed: "+err.Error())
		return geotypes.Coordinate{}, err
	}

	s.record("exactGeoPoint", "revealed")
	return s.coordinate.Coord, nil
}

// AttachMetadata proves C5's metadata-binding circuit
// (geopoint.MetadataCircuit), recursively verifying the Session's
// provider proof and folding metadata's SHA3-512 digest into a public
// metadataCommitment (spec.md section 4.7). Requires AuthenticateFromOracle
// to have run, since it recursively verifies the provider proof that call
// produced.
func (s *Session) AttachMetadata(metadata []byte) (*big.Int, error) {
	if err := s.requireAuthenticated(); err != nil {
		return nil, err
	}

	prover, err := s.registry.Get(ProverMetadata)
	if err != nil {
		return nil, err
	}

	inner, err := recur.AssignInner(s.providerProof.Proof, s.providerProof.PublicWitness, s.providerVK)
	if err != nil {
		return nil, err
	}

	factor := big.NewInt(int64(s.coordinate.Coord.Factor))
	circuit := geopoint.MetadataAssignment(factor, s.coordinate.CommitmentHash(), metadata)
	circuit.Inner = inner

	if _, err := prover.Prove(&circuit, recur.ProverOptions()); err != nil {
		s.record("attachMetadata", "proof failed: "+err.Error())
		return nil, err
	}

	s.record("attachMetadata", "bound")
	return circuit.MetadataCommitment.(*big.Int), nil
}

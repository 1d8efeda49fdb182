// Copyright 2025 zkLocus Contributors

package geopoint

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/consensys/gnark/frontend"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/recur"
)

// MetadataCircuit binds an arbitrary metadata blob to an already-attested
// coordinate (spec.md section 4.7): it recursively verifies a provider
// proof for the coordinate, takes the metadata's SHA3-512 digest as two
// public field halves (the digest itself is computed out-of-circuit --
// SHA3 has no practical in-circuit gadget in the retrieval pack, and
// spec.md treats externally-verifiable digests the same way it treats
// Poseidon and signatures: an imported primitive, not something to
// reimplement from field arithmetic), and hashes the two halves into one
// Poseidon metadataCommitment. The coordinate commitment is a separate
// public input and is not part of that hash.
type MetadataCircuit struct {
	Inner recur.InnerProof

	Factor               frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
	MetadataHashLo       frontend.Variable `gnark:",public"`
	MetadataHashHi       frontend.Variable `gnark:",public"`
	MetadataCommitment   frontend.Variable `gnark:",public"`
}

// Inner proof public-input layout for provider.Circuit: SourceKind,
// Factor, CoordinateCommitment.
const (
	providerPubSourceKind = iota
	providerPubFactor
	providerPubCoordinateCommitment
)

func (c *MetadataCircuit) Define(api frontend.API) error {
	if err := recur.AssertValid(api, c.Inner); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, providerPubFactor, c.Factor); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, providerPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return err
	}

	// spec.md section 6: metadataCommitment = Poseidon(sha3_hi_field, sha3_lo_field).
	// coordinateCommitment is bound into the circuit's public output
	// separately above, not folded into this commitment.
	commit, err := fieldhash.InCircuit(api, c.MetadataHashHi, c.MetadataHashLo)
	if err != nil {
		return err
	}
	api.AssertIsEqual(commit, c.MetadataCommitment)

	return nil
}

// SplitMetadataDigest computes SHA3-512(metadata) and splits the 64-byte
// digest into two 32-byte halves, each read as a big-endian integer. Each
// half is strictly less than 2^256 and so does not itself reduce modulo
// the ~254-bit BN254 scalar field; callers that need the reduced field
// representative should take .Mod(half, fieldhash.FieldModulus()).
func SplitMetadataDigest(metadata []byte) (lo, hi *big.Int) {
	digest := sha3.Sum512(metadata)
	hi = new(big.Int).SetBytes(digest[:32])
	lo = new(big.Int).SetBytes(digest[32:])
	return lo, hi
}

// MetadataAssignment builds the public witness portion of MetadataCircuit
// that does not depend on the recursively-verified inner proof (the
// caller fills in Inner separately via recur.AssignInner, mirroring every
// other combinator in this module).
func MetadataAssignment(factor, coordinateCommitment *big.Int, metadata []byte) MetadataCircuit {
	lo, hi := SplitMetadataDigest(metadata)
	modLo := new(big.Int).Mod(lo, fieldhash.FieldModulus())
	modHi := new(big.Int).Mod(hi, fieldhash.FieldModulus())
	return MetadataCircuit{
		Factor:               factor,
		CoordinateCommitment: coordinateCommitment,
		MetadataHashLo:       modLo,
		MetadataHashHi:       modHi,
		MetadataCommitment:   fieldhash.Hash(modHi, modLo),
	}
}

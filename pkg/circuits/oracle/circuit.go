// Copyright 2025 zkLocus Contributors

package oracle

import (
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	bn254twisted "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/consensys/gnark/std/signature/eddsa"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/geotypes"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Circuit proves that the oracle identified by PublicKey signed the
// coordinate committed to by Coordinate, without revealing the
// coordinate, its nonce, or the public key itself -- only their
// commitments are public.
type Circuit struct {
	Coordinate geotypes.NoncedCoordinateVars
	Signature  eddsa.Signature
	PublicKey  eddsa.PublicKey

	Factor               frontend.Variable `gnark:",public"`
	PublicKeyCommitment  frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Coordinate.Coord.Factor, c.Factor)

	coordCommit, err := c.Coordinate.CommitmentHash(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(coordCommit, c.CoordinateCommitment)

	pkCommit, err := fieldhash.InCircuit(api, c.PublicKey.A.X, c.PublicKey.A.Y)
	if err != nil {
		return err
	}
	api.AssertIsEqual(pkCommit, c.PublicKeyCommitment)

	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return err
	}
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	return eddsa.Verify(curve, c.Signature, coordCommit, c.PublicKey, &hasher)
}

// Assignment builds a full witness assignment for Circuit: key signs the
// coordinate's commitment hash, and the resulting signature/public key are
// assigned into their in-circuit forms.
func Assignment(key KeyPair, coord geotypes.NoncedCoordinate) (Circuit, error) {
	msg := coord.CommitmentHash().Bytes()

	sigBytes, err := key.Sign(msg)
	if err != nil {
		return Circuit{}, err
	}

	var sig eddsa.Signature
	sig.Assign(tedwards.BN254, sigBytes)

	var pk eddsa.PublicKey
	pk.Assign(tedwards.BN254, key.PublicKeyBytes())

	x, y, err := decompressPublicKey(key.PublicKeyBytes())
	if err != nil {
		return Circuit{}, err
	}

	return Circuit{
		Coordinate:           geotypes.AssignNoncedCoordinate(coord),
		Signature:            sig,
		PublicKey:            pk,
		Factor:               coord.Coord.Factor,
		PublicKeyCommitment:  fieldhash.Hash(x, y),
		CoordinateCommitment: coord.CommitmentHash(),
	}, nil
}

// decompressPublicKey recovers the uncompressed (X, Y) BabyJubJub affine
// coordinates from a compressed public key, the same pair eddsa.PublicKey
// decompresses into in-circuit. Computed witness-side with gnark-crypto's
// own twistededwards point type so the two never disagree.
func decompressPublicKey(compressed []byte) (x, y *big.Int, err error) {
	var p bn254twisted.PointAffine
	if _, err := p.SetBytes(compressed); err != nil {
		return nil, nil, zkerrors.Wrap(err, zkerrors.CodeSignatureInvalid, "decompress oracle public key")
	}
	return p.X.BigInt(new(big.Int)), p.Y.BigInt(new(big.Int)), nil
}

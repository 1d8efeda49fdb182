// Copyright 2025 zkLocus Contributors
//
// Package oracle implements circuit C1 of spec.md section 4.5: proof that
// a coordinate commitment was attested by the holder of a given oracle
// signing key. zkLocus realizes the spec's "ECDSA-style signature" as an
// EdDSA signature over BabyJubJub-on-BN254 (gnark's std/signature/eddsa):
// it is the only signature gadget the retrieval pack demonstrates
// end-to-end in-circuit, and it stays on the native BN254 scalar field
// shared by every other zkLocus circuit, whereas a non-native secp256k1
// ECDSA verifier would need its own emulated field and was not exercised
// anywhere in the corpus.
package oracle

import (
	"crypto/rand"
	"io"

	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark-crypto/hash"
	eddsacrypto "github.com/consensys/gnark-crypto/signature/eddsa"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// hashFunc is the hash gadget EdDSA signs over. gnark's own eddsa gadget
// (std/signature/eddsa) hashes (R, A, M) with whatever std/hash.Hash is
// handed to it; the retrieval pack's one worked EdDSA-in-gnark example
// deliberately pins this to MiMC rather than Poseidon2 ("swapped to MiMC
// for compatibility"), so zkLocus follows that precedent for the
// signature gadget's internal hash specifically. zkLocus's own coordinate
// and polygon commitments (pkg/fieldhash) still use Poseidon2 throughout;
// only EdDSA's internal challenge hash differs.
var hashFunc = hash.MIMC_BN254

// KeyPair is an oracle's EdDSA signing key, generated once per oracle and
// kept off-circuit.
type KeyPair struct {
	signer eddsacrypto.PrivateKey
}

// GenerateKeyPair draws a fresh BabyJubJub EdDSA key pair.
func GenerateKeyPair() (KeyPair, error) {
	return GenerateKeyPairFrom(rand.Reader)
}

// GenerateKeyPairFrom draws a key pair from an explicit randomness
// source, primarily so tests can use a deterministic reader.
func GenerateKeyPairFrom(r io.Reader) (KeyPair, error) {
	signer, err := eddsacrypto.New(tedwards.BN254, r)
	if err != nil {
		return KeyPair{}, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "generate oracle key pair")
	}
	return KeyPair{signer: signer}, nil
}

// PublicKeyBytes returns the compressed public key, the form
// eddsa.PublicKey.Assign expects.
func (k KeyPair) PublicKeyBytes() []byte {
	return k.signer.Public().Bytes()
}

// Sign signs msg (a Poseidon coordinate commitment, serialized as the
// canonical big-endian bytes of its field representation) and returns the
// compressed signature, the form eddsa.Signature.Assign expects.
func (k KeyPair) Sign(msg []byte) ([]byte, error) {
	sig, err := k.signer.Sign(msg, hashFunc.New())
	if err != nil {
		return nil, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "sign oracle attestation")
	}
	return sig, nil
}

// Verify checks a signature against the oracle's own public key, mirroring
// the in-circuit assertion so callers can fail fast before proving.
func (k KeyPair) Verify(sig, msg []byte) (bool, error) {
	ok, err := k.signer.Public().Verify(sig, msg, hashFunc.New())
	if err != nil {
		return false, zkerrors.Wrap(err, zkerrors.CodeSignatureInvalid, "verify oracle attestation")
	}
	return ok, nil
}

// Copyright 2025 zkLocus Contributors
//
// Package fieldhash is the out-of-circuit counterpart to the in-circuit
// Poseidon gadget used by every circuit in this module. It lets callers
// (the proof-session driver, test vectors, CLI tooling) compute the same
// commitments a circuit will assert over, without touching the SNARK
// backend.
//
// Poseidon itself is an imported primitive here, exactly as spec.md
// section 1 scopes it ("Poseidon hash... primitives" are an external
// collaborator concern) — this package is a thin, domain-shaped wrapper
// around gnark-crypto's Poseidon2, following the same
// NewMerkleDamgardHasher/Write/Sum construction the retrieval pack's
// parsdao-pars/zk/poseidon.go uses for its own field hashing.
package fieldhash

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// newHasher returns a fresh Poseidon2 sponge over BN254's scalar field.
func newHasher() interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
} {
	return poseidon2.NewMerkleDamgardHasher()
}

// Hash computes Poseidon(inputs...) over the BN254 scalar field, reducing
// each input modulo the field prime the way gnark-crypto does internally.
func Hash(inputs ...*big.Int) *big.Int {
	h := newHasher()
	for _, in := range inputs {
		var elem fr.Element
		elem.SetBigInt(in)
		b := elem.Bytes()
		h.Write(b[:])
	}
	sum := h.Sum(nil)
	var out fr.Element
	out.SetBytes(sum)
	result := new(big.Int)
	out.BigInt(result)
	return result
}

// HashUint64 is a convenience wrapper for small integer inputs.
func HashUint64(inputs ...uint64) *big.Int {
	bigInputs := make([]*big.Int, len(inputs))
	for i, v := range inputs {
		bigInputs[i] = new(big.Int).SetUint64(v)
	}
	return Hash(bigInputs...)
}

// FieldModulus is the BN254 scalar field prime, exposed for callers (e.g.
// the metadata-binding path in pkg/circuits/geopoint) that need to reduce
// raw bytes into a field element themselves before hashing.
func FieldModulus() *big.Int {
	return fr.Modulus()
}

// BytesToField interprets a big-endian byte slice as an integer and
// reduces it modulo the BN254 scalar field, as spec.md section 4.6
// requires for splitting a SHA3-512 digest into two field elements.
func BytesToField(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	return new(big.Int).Mod(v, FieldModulus())
}

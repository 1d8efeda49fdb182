// Copyright 2025 zkLocus Contributors

package fieldhash

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/poseidon2"
)

// InCircuit hashes a variable number of in-circuit values with Poseidon,
// mirroring the out-of-circuit Hash function in fieldhash.go field-element for
// field-element. Every circuit in this module calls this instead of
// building its own hash chain, the same way the retrieval pack's
// Manyfestation-native-assets-zk-poc circuit builds one mimc.NewMiMC
// hasher and reuses it across Write/Sum/Reset cycles.
func InCircuit(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	hasher, err := poseidon2.NewPoseidon2(api)
	if err != nil {
		return nil, err
	}
	for _, in := range inputs {
		hasher.Write(in)
	}
	return hasher.Sum(), nil
}

// MustInCircuit is InCircuit with the error folded into a circuit-level
// panic, for the common case of hashing inside a Define method that
// already returns early on every other error path; call sites that can
// propagate the error should prefer InCircuit directly.
func MustInCircuit(api frontend.API, inputs ...frontend.Variable) frontend.Variable {
	out, err := InCircuit(api, inputs...)
	if err != nil {
		panic(err)
	}
	return out
}

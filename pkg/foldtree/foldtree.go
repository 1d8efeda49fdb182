// Copyright 2025 zkLocus Contributors
//
// Package foldtree records the provenance of a rollup: the ordered list
// of polygon commitments that were folded, left-to-right, into one side
// of an InOrOutRollup combine tree (pkg/circuits/rollup). zkLocus's
// combine circuits fold pairwise and sequentially (spec.md section 4.4),
// not as a balanced binary tree, so the provenance structure that tracks
// it is a sequential Poseidon chain rather than a Merkle tree: each step
// commits to (previous root, next polygon commitment), mirroring the
// order proofs were actually combined in.
//
// This is bookkeeping for auditors, not a circuit input: nothing in
// pkg/circuits asserts over a FoldTree's root. It lets a verifier who
// holds a rollup proof's public inputs also check, off-chain, which
// concrete polygons contributed to it.
package foldtree

import (
	"math/big"
	"sync"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Tree is a mutex-protected, append-only record of the polygon
// commitments folded into one rollup accumulator.
type Tree struct {
	mu          sync.RWMutex
	commitments []*big.Int
	roots       []*big.Int // roots[i] is the fold root after commitments[:i+1]
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{}
}

// Append records the next polygon commitment folded into the rollup and
// returns the updated fold root.
func (t *Tree) Append(polygonCommitment *big.Int) *big.Int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var root *big.Int
	if len(t.roots) == 0 {
		root = new(big.Int).Set(polygonCommitment)
	} else {
		prev := t.roots[len(t.roots)-1]
		root = fieldhash.Hash(prev, polygonCommitment)
	}

	t.commitments = append(t.commitments, new(big.Int).Set(polygonCommitment))
	t.roots = append(t.roots, root)
	return new(big.Int).Set(root)
}

// Root returns the current fold root, or nil if nothing has been
// appended yet.
func (t *Tree) Root() *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.roots) == 0 {
		return nil
	}
	return new(big.Int).Set(t.roots[len(t.roots)-1])
}

// Len returns the number of polygon commitments folded so far.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.commitments)
}

// Commitments returns a copy of the ordered polygon commitments folded
// into the tree.
func (t *Tree) Commitments() []*big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*big.Int, len(t.commitments))
	for i, c := range t.commitments {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Receipt generates a portable provenance receipt for the commitment
// folded in at index i, letting a verifier recompute the fold root from
// that one commitment forward without holding the whole ordered list.
func (t *Tree) Receipt(index int) (Receipt, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.commitments) {
		return Receipt{}, zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "fold index %d out of range [0,%d)", index, len(t.commitments))
	}

	// For index 0 the commitment is itself the first root; otherwise the
	// receipt starts from the root before it and replays it as the first
	// entry.
	var start *big.Int
	first := index + 1
	if index == 0 {
		start = new(big.Int).Set(t.commitments[0])
	} else {
		start = new(big.Int).Set(t.roots[index-1])
		first = index
	}

	entries := make([]*big.Int, 0, len(t.commitments)-first)
	for i := first; i < len(t.commitments); i++ {
		entries = append(entries, new(big.Int).Set(t.commitments[i]))
	}

	return Receipt{
		Start:   start,
		Anchor:  new(big.Int).Set(t.roots[len(t.roots)-1]),
		Entries: entries,
	}, nil
}

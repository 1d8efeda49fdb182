// Copyright 2025 zkLocus Contributors

package foldtree

import (
	"math/big"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Receipt is a portable fold-provenance proof: folding Entries onto Start,
// in order, must reproduce Anchor. It lets a party who only holds one
// polygon commitment (and this receipt) confirm it was folded into a
// given rollup's public root, without trusting whoever produced the
// rollup proof.
type Receipt struct {
	Start   *big.Int
	Anchor  *big.Int
	Entries []*big.Int
}

// Verify recomputes the fold chain from Start through Entries and checks
// it lands on Anchor.
func (r Receipt) Verify() error {
	if r.Start == nil || r.Anchor == nil {
		return zkerrors.New(zkerrors.CodeInvalidCoordinateDomain, "fold receipt missing start or anchor")
	}

	acc := new(big.Int).Set(r.Start)
	for _, e := range r.Entries {
		acc = fieldhash.Hash(acc, e)
	}

	if acc.Cmp(r.Anchor) != 0 {
		return zkerrors.New(zkerrors.CodeInvalidCoordinateDomain, "fold receipt does not reach claimed anchor")
	}
	return nil
}

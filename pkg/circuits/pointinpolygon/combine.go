// Copyright 2025 zkLocus Contributors

package pointinpolygon

import (
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/zklocus/zklocus/pkg/recur"
)

// combineCircuit is the shared shape of the AND and OR combinators from
// spec.md section 4.3: each recursively verifies two PointInPolygon (or
// further combinator) proofs asserted over the *same* coordinate
// commitment, and exposes the combined boolean plus both inner polygon
// commitments publicly so a verifier can audit which polygons fed the
// result.
type combineCircuit struct {
	Left  recur.InnerProof
	Right recur.InnerProof

	Factor                 frontend.Variable `gnark:",public"`
	CoordinateCommitment   frontend.Variable `gnark:",public"`
	LeftPolygonCommitment  frontend.Variable `gnark:",public"`
	RightPolygonCommitment frontend.Variable `gnark:",public"`
	CombinedIsInside       frontend.Variable `gnark:",public"`
}

// innerPointInPolygonPublics is the declaration order of Circuit's public
// fields (circuit.go): Factor, CoordinateCommitment, PolygonCommitment, IsInside.
// Combinator circuits read a recursively-verified inner proof's witness by
// this fixed position.
const (
	innerPubFactor = iota
	innerPubCoordinateCommitment
	innerPubPolygonCommitment
	innerPubIsInside
)

func (c *combineCircuit) verifyInputs(api frontend.API) (leftInside, rightInside frontend.Variable, err error) {
	if err = recur.AssertValid(api, c.Left); err != nil {
		return nil, nil, err
	}
	if err = recur.AssertValid(api, c.Right); err != nil {
		return nil, nil, err
	}

	if err = recur.BindPublicElement(api, c.Left.Witness.Public, innerPubFactor, c.Factor); err != nil {
		return nil, nil, err
	}
	if err = recur.BindPublicElement(api, c.Right.Witness.Public, innerPubFactor, c.Factor); err != nil {
		return nil, nil, err
	}
	if err = recur.BindPublicElement(api, c.Left.Witness.Public, innerPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return nil, nil, err
	}
	if err = recur.BindPublicElement(api, c.Right.Witness.Public, innerPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return nil, nil, err
	}
	if err = recur.BindPublicElement(api, c.Left.Witness.Public, innerPubPolygonCommitment, c.LeftPolygonCommitment); err != nil {
		return nil, nil, err
	}
	if err = recur.BindPublicElement(api, c.Right.Witness.Public, innerPubPolygonCommitment, c.RightPolygonCommitment); err != nil {
		return nil, nil, err
	}

	// spec.md section 4.3: forbid combining a proof with itself.
	api.AssertIsDifferent(c.LeftPolygonCommitment, c.RightPolygonCommitment)

	return c.Left.Witness.Public[innerPubIsInside].Limbs[0], c.Right.Witness.Public[innerPubIsInside].Limbs[0], nil
}

// AndCircuit implements spec.md section 4.3's AND combinator: the two
// inner proofs must share the same isInside polarity (a mismatch is
// PolarityMismatch at the driver level; in-circuit it is simply
// unsatisfiable), and CombinedIsInside is that shared value.
type AndCircuit struct {
	combineCircuit
}

func (c *AndCircuit) Define(api frontend.API) error {
	left, right, err := c.verifyInputs(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(left, right)
	api.AssertIsEqual(left, c.CombinedIsInside)
	return nil
}

// OrCircuit implements spec.md section 4.3's OR combinator:
// CombinedIsInside := Left.IsInside OR Right.IsInside.
type OrCircuit struct {
	combineCircuit
}

func (c *OrCircuit) Define(api frontend.API) error {
	left, right, err := c.verifyInputs(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(api.Or(left, right), c.CombinedIsInside)
	return nil
}

// CombineWitnessInputs carries everything needed to assign Left/Right on
// an AndCircuit or OrCircuit: the raw Groth16 artifacts pkg/snark produced
// for each inner proof.
type CombineWitnessInputs struct {
	LeftProof, RightProof     groth16.Proof
	LeftWitness, RightWitness witness.Witness
	LeftVK, RightVK           groth16.VerifyingKey
}

func (in CombineWitnessInputs) assign() (left, right recur.InnerProof, err error) {
	left, err = recur.AssignInner(in.LeftProof, in.LeftWitness, in.LeftVK)
	if err != nil {
		return recur.InnerProof{}, recur.InnerProof{}, err
	}
	right, err = recur.AssignInner(in.RightProof, in.RightWitness, in.RightVK)
	if err != nil {
		return recur.InnerProof{}, recur.InnerProof{}, err
	}
	return left, right, nil
}

// AndAssignment builds a full AndCircuit witness assignment.
func AndAssignment(in CombineWitnessInputs, factor, coordinateCommitment, leftPolygonCommitment, rightPolygonCommitment frontend.Variable, combinedIsInside bool) (*AndCircuit, error) {
	left, right, err := in.assign()
	if err != nil {
		return nil, err
	}
	var v frontend.Variable = 0
	if combinedIsInside {
		v = 1
	}
	return &AndCircuit{combineCircuit{
		Left: left, Right: right,
		Factor: factor, CoordinateCommitment: coordinateCommitment,
		LeftPolygonCommitment: leftPolygonCommitment, RightPolygonCommitment: rightPolygonCommitment,
		CombinedIsInside: v,
	}}, nil
}

// PlaceholderAnd returns a zero-valued AndCircuit sized to compile
// against, given the already-compiled constraint system of the inner
// PointInPolygon-family circuit (leaf or combinator) it will verify.
func PlaceholderAnd(innerCCS constraint.ConstraintSystem) *AndCircuit {
	p := recur.Placeholder(innerCCS)
	return &AndCircuit{combineCircuit{Left: p, Right: p}}
}

// PlaceholderOr mirrors PlaceholderAnd for OrCircuit.
func PlaceholderOr(innerCCS constraint.ConstraintSystem) *OrCircuit {
	p := recur.Placeholder(innerCCS)
	return &OrCircuit{combineCircuit{Left: p, Right: p}}
}

// OrAssignment builds a full OrCircuit witness assignment.
func OrAssignment(in CombineWitnessInputs, factor, coordinateCommitment, leftPolygonCommitment, rightPolygonCommitment frontend.Variable, combinedIsInside bool) (*OrCircuit, error) {
	left, right, err := in.assign()
	if err != nil {
		return nil, err
	}
	var v frontend.Variable = 0
	if combinedIsInside {
		v = 1
	}
	return &OrCircuit{combineCircuit{
		Left: left, Right: right,
		Factor: factor, CoordinateCommitment: coordinateCommitment,
		LeftPolygonCommitment: leftPolygonCommitment, RightPolygonCommitment: rightPolygonCommitment,
		CombinedIsInside: v,
	}}, nil
}

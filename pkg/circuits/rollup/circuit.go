// Copyright 2025 zkLocus Contributors
//
// Package rollup implements circuit C4 of spec.md section 4.4: folding a
// set of independent PointInPolygon results for one coordinate into a
// single InOrOutAccumulator, spec.md section 3's {insidePolygonCommitment,
// outsidePolygonCommitment, coordinateCommitment}. Each side commitment is
// zero while its side is empty, and otherwise a Poseidon fold over the
// polygon commitments that landed on that side -- a plain AnyInside/
// AllOutside boolean pair cannot tell a verifier *which* polygons produced
// the result, only that some did, which is the entire point of carrying a
// commitment instead of a flag.
package rollup

import (
	"math/big"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/recur"
)

// LiftCircuit promotes a single PointInPolygon-family proof (a leaf
// predicate, or an AND/OR combinator's output) into the accumulator shape
// every further rollup combine step consumes.
type LiftCircuit struct {
	Inner recur.InnerProof

	// PolygonCommitment is the inner proof's polygon commitment, carried
	// as a private witness so it can be routed onto whichever side
	// (inside/outside) the inner proof's IsInside bit selects -- it is
	// not itself part of InOrOutAccumulator's public output.
	PolygonCommitment frontend.Variable

	Factor               frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
	InsideCommitment     frontend.Variable `gnark:",public"`
	OutsideCommitment    frontend.Variable `gnark:",public"`
}

// Inner proof public-input layout shared by pointinpolygon.Circuit and its
// AND/OR combinators: Factor, CoordinateCommitment, PolygonCommitment,
// IsInside.
const (
	innerPubFactor = iota
	innerPubCoordinateCommitment
	innerPubPolygonCommitment
	innerPubIsInside
)

func (c *LiftCircuit) Define(api frontend.API) error {
	if err := recur.AssertValid(api, c.Inner); err != nil {
		return err
	}

	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, innerPubFactor, c.Factor); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, innerPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Inner.Witness.Public, innerPubPolygonCommitment, c.PolygonCommitment); err != nil {
		return err
	}

	isInside := c.Inner.Witness.Public[innerPubIsInside].Limbs[0]
	api.AssertIsEqual(api.Select(isInside, c.PolygonCommitment, 0), c.InsideCommitment)
	api.AssertIsEqual(api.Select(isInside, 0, c.PolygonCommitment), c.OutsideCommitment)

	return nil
}

// LiftAssignment builds a full witness assignment for LiftCircuit.
func LiftAssignment(innerProof groth16.Proof, innerWitness witness.Witness, innerVK groth16.VerifyingKey, factor, coordinateCommitment, polygonCommitment *big.Int, isInside bool) (*LiftCircuit, error) {
	inner, err := recur.AssignInner(innerProof, innerWitness, innerVK)
	if err != nil {
		return nil, err
	}
	insideCommitment, outsideCommitment := new(big.Int), new(big.Int)
	if isInside {
		insideCommitment.Set(polygonCommitment)
	} else {
		outsideCommitment.Set(polygonCommitment)
	}
	return &LiftCircuit{
		Inner: inner, PolygonCommitment: polygonCommitment,
		Factor: factor, CoordinateCommitment: coordinateCommitment,
		InsideCommitment: insideCommitment, OutsideCommitment: outsideCommitment,
	}, nil
}

// CombineCircuit folds two InOrOutAccumulator proofs (each for the same
// coordinate) into one, per spec.md section 4.4: each side commitment is
// folded independently -- 0 if both sides are 0, the non-zero one if
// exactly one side is 0, Poseidon(left.side, right.side) if both are
// non-zero -- and the combine is rejected outright if both side
// commitments already agree pairwise (a no-op fold of one accumulator
// with itself).
type CombineCircuit struct {
	Left, Right recur.InnerProof

	// Left/RightInsideCommitment and Left/RightOutsideCommitment are the
	// two inner accumulators' side commitments, bound as private witness
	// so Define can fold and compare them; they are not themselves public
	// (only the combined result is).
	LeftInsideCommitment   frontend.Variable
	LeftOutsideCommitment  frontend.Variable
	RightInsideCommitment  frontend.Variable
	RightOutsideCommitment frontend.Variable

	Factor               frontend.Variable `gnark:",public"`
	CoordinateCommitment frontend.Variable `gnark:",public"`
	InsideCommitment     frontend.Variable `gnark:",public"`
	OutsideCommitment    frontend.Variable `gnark:",public"`
}

// Accumulator proof public-input layout: Factor, CoordinateCommitment,
// InsideCommitment, OutsideCommitment (LiftCircuit's and CombineCircuit's
// own declaration order agree, so a combine step can fold either a lift or
// another combine).
const (
	accPubFactor = iota
	accPubCoordinateCommitment
	accPubInsideCommitment
	accPubOutsideCommitment
)

func (c *CombineCircuit) Define(api frontend.API) error {
	if err := recur.AssertValid(api, c.Left); err != nil {
		return err
	}
	if err := recur.AssertValid(api, c.Right); err != nil {
		return err
	}

	if err := recur.BindPublicElement(api, c.Left.Witness.Public, accPubFactor, c.Factor); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Right.Witness.Public, accPubFactor, c.Factor); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Left.Witness.Public, accPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Right.Witness.Public, accPubCoordinateCommitment, c.CoordinateCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Left.Witness.Public, accPubInsideCommitment, c.LeftInsideCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Left.Witness.Public, accPubOutsideCommitment, c.LeftOutsideCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Right.Witness.Public, accPubInsideCommitment, c.RightInsideCommitment); err != nil {
		return err
	}
	if err := recur.BindPublicElement(api, c.Right.Witness.Public, accPubOutsideCommitment, c.RightOutsideCommitment); err != nil {
		return err
	}

	insideAgrees := api.IsZero(api.Sub(c.LeftInsideCommitment, c.RightInsideCommitment))
	outsideAgrees := api.IsZero(api.Sub(c.LeftOutsideCommitment, c.RightOutsideCommitment))
	api.AssertIsEqual(api.And(insideAgrees, outsideAgrees), 0)

	insideFolded, err := foldSide(api, c.LeftInsideCommitment, c.RightInsideCommitment)
	if err != nil {
		return err
	}
	api.AssertIsEqual(insideFolded, c.InsideCommitment)

	outsideFolded, err := foldSide(api, c.LeftOutsideCommitment, c.RightOutsideCommitment)
	if err != nil {
		return err
	}
	api.AssertIsEqual(outsideFolded, c.OutsideCommitment)

	return nil
}

// foldSide implements spec.md section 4.4's per-side combine rule: 0 if
// both inputs are 0, the non-zero one if exactly one is 0 (their sum,
// since the other is 0), Poseidon(left, right) otherwise.
func foldSide(api frontend.API, left, right frontend.Variable) (frontend.Variable, error) {
	leftZero := api.IsZero(left)
	rightZero := api.IsZero(right)
	bothZero := api.And(leftZero, rightZero)
	bothNonZero := api.And(api.Sub(1, leftZero), api.Sub(1, rightZero))

	folded, err := fieldhash.InCircuit(api, left, right)
	if err != nil {
		return nil, err
	}
	exactlyOneNonZero := api.Add(left, right)

	combined := api.Select(bothNonZero, folded, exactlyOneNonZero)
	return api.Select(bothZero, 0, combined), nil
}

// FoldSide is the witness-side counterpart of the in-circuit foldSide,
// exposed so pkg/session can compute the same per-side fold when building
// a CombineCircuit assignment.
func FoldSide(left, right *big.Int) *big.Int {
	leftZero := left.Sign() == 0
	rightZero := right.Sign() == 0
	switch {
	case leftZero && rightZero:
		return new(big.Int)
	case leftZero:
		return new(big.Int).Set(right)
	case rightZero:
		return new(big.Int).Set(left)
	default:
		return fieldhash.Hash(left, right)
	}
}

// CombineWitnessInputs carries the raw Groth16 artifacts for both
// accumulator proofs a CombineCircuit witness needs.
type CombineWitnessInputs struct {
	LeftProof, RightProof     groth16.Proof
	LeftWitness, RightWitness witness.Witness
	LeftVK, RightVK           groth16.VerifyingKey
}

// CombineAssignment builds a full witness assignment for CombineCircuit
// from both inner accumulators' side commitments.
func CombineAssignment(in CombineWitnessInputs, factor, coordinateCommitment *big.Int, leftInside, leftOutside, rightInside, rightOutside *big.Int) (*CombineCircuit, error) {
	left, err := recur.AssignInner(in.LeftProof, in.LeftWitness, in.LeftVK)
	if err != nil {
		return nil, err
	}
	right, err := recur.AssignInner(in.RightProof, in.RightWitness, in.RightVK)
	if err != nil {
		return nil, err
	}
	return &CombineCircuit{
		Left: left, Right: right,
		LeftInsideCommitment: leftInside, LeftOutsideCommitment: leftOutside,
		RightInsideCommitment: rightInside, RightOutsideCommitment: rightOutside,
		Factor: factor, CoordinateCommitment: coordinateCommitment,
		InsideCommitment:  FoldSide(leftInside, rightInside),
		OutsideCommitment: FoldSide(leftOutside, rightOutside),
	}, nil
}

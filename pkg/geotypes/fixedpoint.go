// Copyright 2025 zkLocus Contributors
//
// Package geotypes implements the zkLocus data model (spec.md section 3):
// fixed-point integers, coordinates, nonced coordinates, and triangles,
// plus the witness-side helpers that compute the same Poseidon
// commitments the circuits assert over in-circuit.
package geotypes

import (
	"math/big"
	"strings"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// MaxFactor is the largest accepted decimal factor (spec.md section 3: f <= 7).
const MaxFactor = 7

// FixedPointInt is a signed integer representing value * 10^-factor.
// It is kept as explicit sign + magnitude (rather than a single signed
// big.Int) because that is exactly what spec.md section 3 describes.
// Circuits receive SignedValue() (see CoordinateVars), not the magnitude.
type FixedPointInt struct {
	Negative  bool
	Magnitude *big.Int
	Factor    int
}

// SignedValue returns the integer value with its sign applied (i.e. the
// stored integer before dividing by 10^Factor).
func (f FixedPointInt) SignedValue() *big.Int {
	v := new(big.Int).Set(f.Magnitude)
	if f.Negative {
		v.Neg(v)
	}
	return v
}

// FromInt64 builds a FixedPointInt from a signed stored integer and an
// explicit factor.
func FromInt64(stored int64, factor int) FixedPointInt {
	neg := stored < 0
	mag := big.NewInt(stored)
	mag.Abs(mag)
	return FixedPointInt{Negative: neg, Magnitude: mag, Factor: factor}
}

// ParseDecimal parses a decimal string like "-12.345" or "180" into a
// FixedPointInt, inferring the factor from the number of digits after the
// decimal point. Rejects a factor greater than MaxFactor.
func ParseDecimal(s string) (FixedPointInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FixedPointInt{}, zkerrors.New(zkerrors.CodeInvalidCoordinateDomain, "empty coordinate literal")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	factor := len(fracPart)
	if factor > MaxFactor {
		return FixedPointInt{}, zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain,
			"decimal factor %d exceeds maximum %d in %q", factor, MaxFactor, s)
	}

	digits := intPart + fracPart
	mag, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return FixedPointInt{}, zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "malformed coordinate literal %q", s)
	}

	return FixedPointInt{Negative: neg && mag.Sign() != 0, Magnitude: mag, Factor: factor}, nil
}

// WithFactor rescales f to the target factor, assuming target >= f.Factor
// (zkLocus never needs to *lose* precision: every coordinate and triangle
// vertex in one circuit invocation shares a single factor by construction
// once argument validation passes).
func (f FixedPointInt) WithFactor(target int) FixedPointInt {
	if target == f.Factor {
		return f
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(target-f.Factor)), nil)
	mag := new(big.Int).Mul(f.Magnitude, scale)
	return FixedPointInt{Negative: f.Negative, Magnitude: mag, Factor: target}
}

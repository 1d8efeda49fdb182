// Copyright 2025 zkLocus Contributors

package geotypes

import (
	"crypto/rand"
	"math/big"

	"github.com/zklocus/zklocus/pkg/fieldhash"
	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Coordinate is a planar (latitude, longitude) pair sharing one decimal
// factor, per spec.md section 3.
type Coordinate struct {
	Latitude  FixedPointInt
	Longitude FixedPointInt
	Factor    int
}

// NewCoordinate builds and validates a Coordinate from stored integer
// latitude/longitude at the given factor.
func NewCoordinate(lat, lon int64, factor int) (Coordinate, error) {
	c := Coordinate{
		Latitude:  FromInt64(lat, factor),
		Longitude: FromInt64(lon, factor),
		Factor:    factor,
	}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate enforces spec.md section 3's coordinate invariants:
// |lat|/10^f <= 90, |lon|/10^f <= 180, f <= 7.
func (c Coordinate) Validate() error {
	if c.Factor < 0 || c.Factor > MaxFactor {
		return zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "factor %d out of range [0,%d]", c.Factor, MaxFactor)
	}
	if c.Latitude.Factor != c.Factor || c.Longitude.Factor != c.Factor {
		return zkerrors.New(zkerrors.CodeInvalidCoordinateDomain, "latitude/longitude factor does not match coordinate factor")
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Factor)), nil)
	latBound := new(big.Int).Mul(big.NewInt(90), scale)
	lonBound := new(big.Int).Mul(big.NewInt(180), scale)

	if c.Latitude.Magnitude.Cmp(latBound) > 0 {
		return zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "latitude magnitude %s exceeds 90*10^%d", c.Latitude.Magnitude, c.Factor)
	}
	if c.Longitude.Magnitude.Cmp(lonBound) > 0 {
		return zkerrors.Newf(zkerrors.CodeInvalidCoordinateDomain, "longitude magnitude %s exceeds 180*10^%d", c.Longitude.Magnitude, c.Factor)
	}
	return nil
}

// Hash returns Poseidon(lat, lon, factor), the inner coordinate hash that
// NoncedCoordinate's commitment is built on top of (spec.md section 3).
func (c Coordinate) Hash() *big.Int {
	return fieldhash.Hash(c.Latitude.SignedValue(), c.Longitude.SignedValue(), big.NewInt(int64(c.Factor)))
}

// NoncedCoordinate binds a Coordinate to a single-use nonce, preventing
// commitment grinding (spec.md section 3).
type NoncedCoordinate struct {
	Coord Coordinate
	Nonce *big.Int
}

// NewNoncedCoordinate draws a cryptographically random nonce and pairs it
// with coord.
func NewNoncedCoordinate(coord Coordinate) (NoncedCoordinate, error) {
	nonce, err := rand.Int(rand.Reader, fieldhash.FieldModulus())
	if err != nil {
		return NoncedCoordinate{}, zkerrors.Wrap(err, zkerrors.CodeProverFailure, "generate coordinate nonce")
	}
	return NoncedCoordinate{Coord: coord, Nonce: nonce}, nil
}

// CommitmentHash returns Poseidon(Poseidon(lat, lon, factor), nonce), the
// public coordinateCommitment (spec.md sections 3 and 6).
func (n NoncedCoordinate) CommitmentHash() *big.Int {
	return fieldhash.Hash(n.Coord.Hash(), n.Nonce)
}

// Copyright 2025 zkLocus Contributors

package geotypes

import (
	"testing"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

func TestNewCoordinateValidation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon int64
		factor   int
		wantCode zkerrors.Code
		wantErr  bool
	}{
		{"san francisco", 378977, -1224194, 4, "", false},
		{"north pole exact boundary", 900000, 0, 4, "", false},
		{"south pole exact boundary", -900000, 0, 4, "", false},
		{"antimeridian east boundary", 0, 1800000, 4, "", false},
		{"antimeridian west boundary", 0, -1800000, 4, "", false},
		{"latitude one unit over", 900001, 0, 4, zkerrors.CodeInvalidCoordinateDomain, true},
		{"longitude one unit over", 0, 1800001, 4, zkerrors.CodeInvalidCoordinateDomain, true},
		{"factor too large", 0, 0, 8, zkerrors.CodeInvalidCoordinateDomain, true},
		{"negative factor", 0, 0, -1, zkerrors.CodeInvalidCoordinateDomain, true},
		{"zero factor", 90, 180, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordinate(tt.lat, tt.lon, tt.factor)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewCoordinate(%d,%d,%d) = %+v, want error", tt.lat, tt.lon, tt.factor, c)
				}
				if code, ok := zkerrors.CodeOf(err); !ok || code != tt.wantCode {
					t.Errorf("error code = %v, want %v", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCoordinate(%d,%d,%d) unexpected error: %v", tt.lat, tt.lon, tt.factor, err)
			}
		})
	}
}

func TestCoordinateHashDeterministicAndSensitive(t *testing.T) {
	a, err := NewCoordinate(378977, -1224194, 4)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	b, err := NewCoordinate(378977, -1224194, 4)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}
	c, err := NewCoordinate(378978, -1224194, 4)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}

	if a.Hash().Cmp(b.Hash()) != 0 {
		t.Errorf("identical coordinates hashed differently: %s vs %s", a.Hash(), b.Hash())
	}
	if a.Hash().Cmp(c.Hash()) == 0 {
		t.Errorf("distinct coordinates hashed identically")
	}
}

func TestNoncedCoordinateCommitmentHidesNonce(t *testing.T) {
	coord, err := NewCoordinate(378977, -1224194, 4)
	if err != nil {
		t.Fatalf("NewCoordinate: %v", err)
	}

	n1, err := NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}
	n2, err := NewNoncedCoordinate(coord)
	if err != nil {
		t.Fatalf("NewNoncedCoordinate: %v", err)
	}

	if n1.Nonce.Cmp(n2.Nonce) == 0 {
		t.Fatalf("two draws produced the same nonce, generator is not random")
	}
	if n1.CommitmentHash().Cmp(n2.CommitmentHash()) == 0 {
		t.Errorf("same coordinate with different nonces produced the same commitment")
	}
	if n1.CommitmentHash().Cmp(coord.Hash()) == 0 {
		t.Errorf("nonced commitment must differ from the bare coordinate hash")
	}
}

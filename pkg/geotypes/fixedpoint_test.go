// Copyright 2025 zkLocus Contributors

package geotypes

import (
	"math/big"
	"testing"
)

func TestFromInt64(t *testing.T) {
	tests := []struct {
		name      string
		stored    int64
		factor    int
		wantNeg   bool
		wantMag   int64
	}{
		{"positive", 378977, 4, false, 378977},
		{"negative", -1224194, 4, true, 1224194},
		{"zero", 0, 4, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FromInt64(tt.stored, tt.factor)
			if f.Negative != tt.wantNeg {
				t.Errorf("Negative = %v, want %v", f.Negative, tt.wantNeg)
			}
			if f.Magnitude.Cmp(big.NewInt(tt.wantMag)) != 0 {
				t.Errorf("Magnitude = %s, want %d", f.Magnitude, tt.wantMag)
			}
			if f.Factor != tt.factor {
				t.Errorf("Factor = %d, want %d", f.Factor, tt.factor)
			}
			if f.SignedValue().Cmp(big.NewInt(tt.stored)) != 0 {
				t.Errorf("SignedValue() = %s, want %d", f.SignedValue(), tt.stored)
			}
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErr    bool
		wantSigned int64
		wantFactor int
	}{
		{"plain integer", "180", false, 180, 0},
		{"negative integer", "-90", false, -90, 0},
		{"decimal", "37.8977", false, 378977, 4},
		{"negative decimal", "-122.4194", false, -1224194, 4},
		{"explicit plus", "+12.5", false, 125, 1},
		{"zero", "0", false, 0, 0},
		{"negative zero stays non-negative", "-0.0", false, 0, 1},
		{"empty", "", true, 0, 0},
		{"too many fraction digits", "1.12345678", true, 0, 0},
		{"malformed", "12.34.56", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimal(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal(%q) unexpected error: %v", tt.input, err)
			}
			if got.Factor != tt.wantFactor {
				t.Errorf("Factor = %d, want %d", got.Factor, tt.wantFactor)
			}
			if got.SignedValue().Cmp(big.NewInt(tt.wantSigned)) != 0 {
				t.Errorf("SignedValue() = %s, want %d", got.SignedValue(), tt.wantSigned)
			}
		})
	}
}

func TestFixedPointIntWithFactor(t *testing.T) {
	f := FromInt64(-1224194, 4)

	same := f.WithFactor(4)
	if same.SignedValue().Cmp(f.SignedValue()) != 0 || same.Factor != 4 {
		t.Errorf("WithFactor(same) = %+v, want unchanged", same)
	}

	up := f.WithFactor(6)
	wantUp := big.NewInt(-122419400)
	if up.SignedValue().Cmp(wantUp) != 0 {
		t.Errorf("WithFactor(6).SignedValue() = %s, want %s", up.SignedValue(), wantUp)
	}
	if up.Factor != 6 {
		t.Errorf("WithFactor(6).Factor = %d, want 6", up.Factor)
	}
}

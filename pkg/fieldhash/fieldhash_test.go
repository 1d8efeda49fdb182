// Copyright 2025 zkLocus Contributors

package fieldhash

import (
	"math/big"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash(big.NewInt(1), big.NewInt(2), big.NewInt(3))
	b := Hash(big.NewInt(1), big.NewInt(2), big.NewInt(3))
	if a.Cmp(b) != 0 {
		t.Errorf("Hash() is not deterministic: %s vs %s", a, b)
	}
}

func TestHashIsOrderSensitive(t *testing.T) {
	a := Hash(big.NewInt(1), big.NewInt(2))
	b := Hash(big.NewInt(2), big.NewInt(1))
	if a.Cmp(b) == 0 {
		t.Errorf("Hash(1,2) == Hash(2,1), want distinct outputs")
	}
}

func TestHashIsArityASensitive(t *testing.T) {
	a := Hash(big.NewInt(1), big.NewInt(2))
	b := Hash(big.NewInt(1), big.NewInt(2), big.NewInt(0))
	if a.Cmp(b) == 0 {
		t.Errorf("Hash(1,2) == Hash(1,2,0), want distinct outputs for different arity")
	}
}

func TestHashReducesModField(t *testing.T) {
	modulus := FieldModulus()
	over := new(big.Int).Add(modulus, big.NewInt(5))

	a := Hash(big.NewInt(5))
	b := Hash(over)
	if a.Cmp(b) != 0 {
		t.Errorf("Hash(5) = %s, Hash(modulus+5) = %s, want equal after field reduction", a, b)
	}
}

func TestHashUint64MatchesHash(t *testing.T) {
	a := HashUint64(7, 8, 9)
	b := Hash(big.NewInt(7), big.NewInt(8), big.NewInt(9))
	if a.Cmp(b) != 0 {
		t.Errorf("HashUint64(7,8,9) = %s, want %s", a, b)
	}
}

func TestFieldModulusIsPositive(t *testing.T) {
	if FieldModulus().Sign() <= 0 {
		t.Errorf("FieldModulus() = %s, want a positive prime", FieldModulus())
	}
}

func TestBytesToFieldReducesModField(t *testing.T) {
	modulus := FieldModulus()
	big34 := big.NewInt(34)
	over := new(big.Int).Add(modulus, big34)

	got := BytesToField(over.Bytes())
	if got.Cmp(big34) != 0 {
		t.Errorf("BytesToField(modulus+34) = %s, want %s", got, big34)
	}
}

func TestBytesToFieldOfZero(t *testing.T) {
	got := BytesToField([]byte{})
	if got.Sign() != 0 {
		t.Errorf("BytesToField(empty) = %s, want 0", got)
	}
}

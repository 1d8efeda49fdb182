// Copyright 2025 zkLocus Contributors

package zkerrors

import (
	"errors"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(CodeUnauthenticated, "no oracle attestation on session")
	want := "UNAUTHENTICATED: no oracle attestation on session"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeFactorMismatch, "factor %d != %d", 4, 5)
	want := "FACTOR_MISMATCH: factor 4 != 5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("backend unavailable")
	err := Wrap(cause, CodeProverFailure, "setup failed")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	want := "PROVER_FAILURE: setup failed: backend unavailable"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapfFormatsMessage(t *testing.T) {
	cause := errors.New("eof")
	err := Wrapf(cause, CodeProverFailure, "reading key %d", 3)
	want := "PROVER_FAILURE: reading key 3: eof"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesByCodeOnly(t *testing.T) {
	a := New(CodeSignatureInvalid, "first message")
	b := New(CodeSignatureInvalid, "a completely different message")
	c := New(CodeProverFailure, "first message")

	if !errors.Is(a, b) {
		t.Errorf("errors.Is(a, b) = false, want true: same code should match regardless of message")
	}
	if errors.Is(a, c) {
		t.Errorf("errors.Is(a, c) = true, want false: different codes should not match")
	}
}

func TestCodeOf(t *testing.T) {
	err := New(CodeDuplicatePolygon, "same polygon commitment twice")
	code, ok := CodeOf(err)
	if !ok || code != CodeDuplicatePolygon {
		t.Errorf("CodeOf() = (%v, %v), want (%v, true)", code, ok, CodeDuplicatePolygon)
	}

	_, ok = CodeOf(errors.New("plain error"))
	if ok {
		t.Errorf("CodeOf() on a plain error reported ok=true, want false")
	}
}

func TestCodeOfUnwrapsWrappedErrors(t *testing.T) {
	inner := New(CodePolarityMismatch, "inner")
	outer := Wrap(inner, CodeProverFailure, "outer")

	code, ok := CodeOf(outer)
	if !ok || code != CodeProverFailure {
		t.Errorf("CodeOf(outer) = (%v, %v), want (%v, true)", code, ok, CodeProverFailure)
	}

	var asErr *Error
	if !errors.As(outer, &asErr) {
		t.Fatalf("errors.As failed to extract *Error")
	}
	if !errors.Is(asErr.Cause, inner) {
		t.Errorf("outer's cause does not match inner by code")
	}
}

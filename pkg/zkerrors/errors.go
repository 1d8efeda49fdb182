// Copyright 2025 zkLocus Contributors
//
// Package zkerrors defines the named error surface for the zkLocus
// proof-composition engine. Every precondition violation documented in
// spec.md section 7 maps to exactly one Code here; callers are expected to
// switch on Code (or use errors.Is against an *Error carrying the same
// Code) rather than pattern-match on message text.
package zkerrors

import (
	"errors"
	"fmt"
)

// Code identifies a specific, recoverable failure mode.
type Code string

const (
	// CodeInvalidCoordinateDomain marks a latitude, longitude, or factor
	// outside the ranges required by spec.md section 3.
	CodeInvalidCoordinateDomain Code = "INVALID_COORDINATE_DOMAIN"
	// CodeFactorMismatch marks a query point and polygon vertices that
	// disagree on their fixed-point decimal factor.
	CodeFactorMismatch Code = "FACTOR_MISMATCH"
	// CodeUnauthenticated marks an operation that requires a prior oracle
	// attestation but none is present on the session.
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	// CodeMissingProofSet marks a rollup requested with no proof labels, or
	// a proof label that no earlier call recorded.
	CodeMissingProofSet Code = "MISSING_PROOF_SET"
	// CodeInsufficientProofs marks a combine requested with fewer than two
	// input proofs.
	CodeInsufficientProofs Code = "INSUFFICIENT_PROOFS"
	// CodeDuplicatePolygon marks an AND/OR combine call given two proofs
	// that share a polygon commitment.
	CodeDuplicatePolygon Code = "DUPLICATE_POLYGON"
	// CodePolarityMismatch marks an AND call given two proofs whose
	// isInside bits differ.
	CodePolarityMismatch Code = "POLARITY_MISMATCH"
	// CodeSignatureInvalid marks an oracle attestation whose signature
	// fails the in-circuit EdDSA check.
	CodeSignatureInvalid Code = "SIGNATURE_INVALID"
	// CodeProverFailure marks a SNARK backend refusal to produce or verify
	// a proof; fatal for the call that produced it, not for the session.
	CodeProverFailure Code = "PROVER_FAILURE"
)

// Error is the single error type returned across package boundaries in
// this module.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same Code, so callers can write
// errors.Is(err, zkerrors.New(zkerrors.CodeUnauthenticated, "")) as a
// sentinel-style check without constructing a full message.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// New constructs an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a Code and message to an existing error, preserving it as
// the unwrappable cause.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(cause error, code Code, format string, args ...interface{}) *Error {
	return Wrap(cause, code, fmt.Sprintf(format, args...))
}

// CodeOf extracts the Code from err, returning ok=false if err is not (or
// does not wrap) a *Error.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Copyright 2025 zkLocus Contributors
//
// Package zklog provides structured logging for the zkLocus proof engine.
// It wraps log/slog with a handful of domain-specific helpers (circuit
// name, proof identifier) in the style of the teacher's
// accumulate-lite-client-2/liteclient/logging package, trimmed to what a
// proof-composition library actually needs: per-call structured fields, no
// HTTP/tracing integration.
package zklog

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Config selects the logger's output shape.
type Config struct {
	Level     slog.Level
	Format    string // "json" or "text"
	Output    string // "stdout", "stderr", or a file path
	AddSource bool
}

// DefaultConfig returns the zero-friction default: text logs to stdout at
// info level.
func DefaultConfig() *Config {
	return &Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: "stdout",
	}
}

// Logger wraps slog.Logger with zkLocus-specific field helpers.
type Logger struct {
	*slog.Logger
}

// New builds a Logger from Config, defaulting a nil config.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var output io.Writer
	switch cfg.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}

	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler)}, nil
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want log output by default.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithCircuit tags subsequent log lines with the circuit that produced
// them (e.g. "pointinpolygon", "rollup").
func (l *Logger) WithCircuit(name string) *Logger {
	return &Logger{Logger: l.Logger.With("circuit", name)}
}

// WithProof tags subsequent log lines with a proof identifier.
func (l *Logger) WithProof(proofID string) *Logger {
	return &Logger{Logger: l.Logger.With("proof_id", proofID)}
}

// WithError attaches a zkerrors.Error's code (if present) alongside the
// raw error message.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	if code, ok := zkerrors.CodeOf(err); ok {
		return &Logger{Logger: l.Logger.With("error", err.Error(), "error_code", string(code))}
	}
	return &Logger{Logger: l.Logger.With("error", err.Error())}
}

// ProveTiming logs a completed prove call with its wall-clock duration.
func (l *Logger) ProveTiming(circuit string, started time.Time) {
	l.Logger.Info("proof generated", "circuit", circuit, "elapsed", time.Since(started).String())
}

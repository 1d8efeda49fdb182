// Copyright 2025 zkLocus Contributors

package snark

import "testing"

func TestRegistrySetupAndGet(t *testing.T) {
	r := NewRegistry()

	p, err := r.Setup("cubic", &cubicCircuit{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	got, err := r.Get("cubic")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != p {
		t.Errorf("Get returned a different *Prover than Setup produced")
	}
}

func TestRegistryGetUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("does-not-exist"); err == nil {
		t.Error("Get on an unregistered name succeeded, want error")
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Setup("a", &cubicCircuit{}); err != nil {
		t.Fatalf("Setup a: %v", err)
	}
	if _, err := r.Setup("b", &cubicCircuit{}); err != nil {
		t.Fatalf("Setup b: %v", err)
	}

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("Names() = %v, want 2 entries", names)
	}

	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Names() = %v, want to contain both %q and %q", names, "a", "b")
	}
}

// Copyright 2025 zkLocus Contributors

package snark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark/frontend"
)

// cubicCircuit is a minimal circuit (X^3 + X + 5 == Y) used only to
// exercise Prover's compile/setup/prove/verify lifecycle independent of
// any zkLocus-specific circuit.
type cubicCircuit struct {
	X frontend.Variable
	Y frontend.Variable `gnark:",public"`
}

func (c *cubicCircuit) Define(api frontend.API) error {
	x3 := api.Mul(c.X, c.X, c.X)
	api.AssertIsEqual(api.Add(x3, c.X, 5), c.Y)
	return nil
}

func TestProverSetupProveVerifyRoundTrip(t *testing.T) {
	p := NewProver()
	if err := p.Setup(&cubicCircuit{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	assignment := &cubicCircuit{X: 3, Y: 35}
	result, err := p.Prove(assignment)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := p.VerifyLocally(result.Proof, result.PublicWitness); err != nil {
		t.Errorf("VerifyLocally on a genuine proof failed: %v", err)
	}
}

func TestProverRejectsWrongAssignment(t *testing.T) {
	p := NewProver()
	if err := p.Setup(&cubicCircuit{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if _, err := p.Prove(&cubicCircuit{X: 3, Y: 36}); err == nil {
		t.Error("Prove with an unsatisfying assignment succeeded, want error")
	}
}

func TestProverUsableBeforeSetupFails(t *testing.T) {
	p := NewProver()
	if _, err := p.Prove(&cubicCircuit{X: 3, Y: 35}); err == nil {
		t.Error("Prove on an uninitialized Prover succeeded, want error")
	}
	if err := p.VerifyLocally(nil, nil); err == nil {
		t.Error("VerifyLocally on an uninitialized Prover succeeded, want error")
	}
}

func TestProverSaveAndLoadKeys(t *testing.T) {
	dir := t.TempDir()
	csPath := filepath.Join(dir, "cubic.cs")
	pkPath := filepath.Join(dir, "cubic.pk")
	vkPath := filepath.Join(dir, "cubic.vk")

	original := NewProver()
	if err := original.Setup(&cubicCircuit{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := original.SaveKeys(csPath, pkPath, vkPath); err != nil {
		t.Fatalf("SaveKeys: %v", err)
	}

	for _, p := range []string{csPath, pkPath, vkPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}

	restored := NewProver()
	if err := restored.LoadKeys(csPath, pkPath, vkPath); err != nil {
		t.Fatalf("LoadKeys: %v", err)
	}

	result, err := restored.Prove(&cubicCircuit{X: 3, Y: 35})
	if err != nil {
		t.Fatalf("Prove after LoadKeys: %v", err)
	}
	if err := restored.VerifyLocally(result.Proof, result.PublicWitness); err != nil {
		t.Errorf("VerifyLocally after LoadKeys failed: %v", err)
	}
}

func TestProverSaveKeysBeforeSetupFails(t *testing.T) {
	p := NewProver()
	dir := t.TempDir()
	err := p.SaveKeys(filepath.Join(dir, "a"), filepath.Join(dir, "b"), filepath.Join(dir, "c"))
	if err == nil {
		t.Error("SaveKeys on an uninitialized Prover succeeded, want error")
	}
}

// Copyright 2025 zkLocus Contributors

package snark

import (
	"sync"

	"github.com/consensys/gnark/frontend"

	"github.com/zklocus/zklocus/pkg/zkerrors"
)

// Registry holds one Prover per named circuit kind, so pkg/session can
// look up "the PointInPolygon prover" or "the AND combinator prover"
// without every caller wiring its own Setup/LoadKeys boilerplate.
type Registry struct {
	mu      sync.RWMutex
	provers map[string]*Prover
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{provers: make(map[string]*Prover)}
}

// Setup compiles placeholder under name and runs its trusted setup,
// storing the resulting Prover for later lookup.
func (r *Registry) Setup(name string, placeholder frontend.Circuit) (*Prover, error) {
	p := NewProver()
	if err := p.Setup(placeholder); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.provers[name] = p
	return p, nil
}

// Get looks up a previously-registered Prover by name.
func (r *Registry) Get(name string) (*Prover, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.provers[name]
	if !ok {
		return nil, zkerrors.Newf(zkerrors.CodeProverFailure, "no prover registered for circuit %q", name)
	}
	return p, nil
}

// Names returns the registered circuit kinds, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.provers))
	for name := range r.provers {
		names = append(names, name)
	}
	return names
}

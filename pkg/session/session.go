// Copyright 2025 zkLocus Contributors
//
// Package session implements the non-circuit proof-session driver from
// spec.md sections 4.7/5: the orchestration layer a client library or CLI
// calls to authenticate a coordinate, prove it against one or more
// polygons, combine those proofs, and optionally reveal the exact point or
// bind metadata to it.
//
// A Session is not itself a circuit; it sequences calls into the circuit
// packages and pkg/snark in the one order spec.md section 5 requires:
// authenticate, then prove, then combine -- strictly sequential,
// cooperative (one goroutine drives one Session; it is not safe to call
// two Session methods concurrently on the same query) and fail-fast on
// any precondition violation, per spec.md section 7.
package session

import (
	"math/big"

	"github.com/consensys/gnark/backend/groth16"

	"github.com/zklocus/zklocus/pkg/circuits/oracle"
	"github.com/zklocus/zklocus/pkg/circuits/provider"
	"github.com/zklocus/zklocus/pkg/foldtree"
	"github.com/zklocus/zklocus/pkg/geotypes"
	"github.com/zklocus/zklocus/pkg/recur"
	"github.com/zklocus/zklocus/pkg/snark"
	"github.com/zklocus/zklocus/pkg/zkerrors"
	"github.com/zklocus/zklocus/pkg/zklog"
)

// Prover names under which pkg/snark.Registry must hold a compiled,
// set-up Prover before a Session can use it.
const (
	ProverOracle         = "oracle"
	ProverProvider       = "provider"
	ProverPointInPolygon = "pointinpolygon"
	ProverAnd            = "and"
	ProverOr             = "or"
	ProverRollupLift     = "rollup.lift"
	ProverRollupCombine  = "rollup.combine"
	ProverExactGeoPoint  = "geopoint.exact"
	ProverMetadata       = "geopoint.metadata"
)

// CombineOp selects an AND or OR combinator for CombineProofs.
type CombineOp int

const (
	OpAnd CombineOp = iota
	OpOr
)

// polygonProof is one proven PointInPolygon-family result kept for
// possible further combination.
type polygonProof struct {
	label             string
	polygonCommitment *big.Int
	isInside          bool
	proof             snark.Result
	vk                groth16.VerifyingKey
}

// Session drives one coordinate through the zkLocus proof lifecycle:
// authenticate once, then prove/combine any number of times.
type Session struct {
	registry *snark.Registry
	logger   *zklog.Logger

	coordinate    *geotypes.NoncedCoordinate
	coordProof    *snark.Result
	coordVK       groth16.VerifyingKey
	providerProof *snark.Result
	providerVK    groth16.VerifyingKey

	proofs []polygonProof
	fold   *foldtree.Tree
	audit  []Event

	accumulator *accumulatorState
}

// accumulatorState is the Session's running InOrOutAccumulator (C4):
// spec.md section 3's {insidePolygonCommitment, outsidePolygonCommitment},
// plus the artifacts needed to fold in one more proof.
type accumulatorState struct {
	proof             snark.Result
	vk                groth16.VerifyingKey
	insideCommitment  *big.Int
	outsideCommitment *big.Int
}

// New returns an unauthenticated Session backed by registry for Prover
// lookups. Callers must register ProverOracle/ProverProvider/
// ProverPointInPolygon/ProverAnd/ProverOr/ProverRollupLift/
// ProverRollupCombine/ProverExactGeoPoint/ProverMetadata (whichever
// operations they intend to call) before using the Session.
func New(registry *snark.Registry, logger *zklog.Logger) *Session {
	if logger == nil {
		logger = zklog.Nop()
	}
	return &Session{registry: registry, logger: logger, fold: foldtree.New()}
}

func (s *Session) record(op string, detail string) {
	e := newEvent(op, detail)
	e.Seq = len(s.audit)
	s.audit = append(s.audit, e)
}

// History returns a copy of this Session's ordered audit log: every
// operation attempted, in call order, with outcome, supplementing
// spec.md's proof objects with a record a client can show a user ("what
// did we just prove, and in what order").
func (s *Session) History() []Event {
	out := make([]Event, len(s.audit))
	copy(out, s.audit)
	return out
}

// requireAuthenticated fails fast (spec.md section 7's `Unauthenticated`)
// if no coordinate has been authenticated yet.
func (s *Session) requireAuthenticated() error {
	if s.coordinate == nil {
		return zkerrors.New(zkerrors.CodeUnauthenticated, "operation requires a prior oracle attestation; call AuthenticateFromOracle first")
	}
	return nil
}

// AuthenticateFromOracle proves C1 (oracle.Circuit) for coord signed by
// key, then wraps it into C2 (provider.Circuit), establishing the
// coordinate this Session will prove predicates against. Must be called
// before InPolygon/CombineProofs/ExactGeoPoint/AttachMetadata. Calling it
// again replaces the previously authenticated coordinate and discards any
// proofs, rollup accumulator, and fold-tree entries recorded against it --
// spec.md section 7 does not name a "re-authenticated" error kind, and
// silently carrying proofs bound to a superseded coordinate commitment
// forward would be the actual hazard.
func (s *Session) AuthenticateFromOracle(key oracle.KeyPair, coord geotypes.Coordinate) error {
	if err := coord.Validate(); err != nil {
		s.record("authenticate", "rejected: "+err.Error())
		return err
	}

	nonced, err := geotypes.NewNoncedCoordinate(coord)
	if err != nil {
		return err
	}

	oracleProver, err := s.registry.Get(ProverOracle)
	if err != nil {
		return err
	}
	oracleCircuit, err := oracle.Assignment(key, nonced)
	if err != nil {
		return err
	}
	oracleResult, err := oracleProver.Prove(&oracleCircuit)
	if err != nil {
		s.record("authenticate", "oracle proof failed: "+err.Error())
		return err
	}

	providerProver, err := s.registry.Get(ProverProvider)
	if err != nil {
		return err
	}
	providerCircuit, err := provider.Assignment(
		oracleResult.Proof, oracleResult.PublicWitness, oracleProver.VerifyingKey(),
		coord.Factor, nonced.CommitmentHash(),
	)
	if err != nil {
		return err
	}
	providerResult, err := providerProver.Prove(providerCircuit, recur.ProverOptions())
	if err != nil {
		s.record("authenticate", "provider proof failed: "+err.Error())
		return err
	}

	s.coordinate = &nonced
	s.coordProof = &oracleResult
	s.coordVK = oracleProver.VerifyingKey()
	s.providerProof = &providerResult
	s.providerVK = providerProver.VerifyingKey()
	s.proofs = nil
	s.fold = foldtree.New()
	s.accumulator = nil

	s.record("authenticate", "ok")
	return nil
}

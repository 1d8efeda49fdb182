// Copyright 2025 zkLocus Contributors
//
// zklocus-demo is a small CLI that drives one zkLocus proof session
// end to end: authenticate a coordinate from a freshly generated oracle
// key, prove it against a triangle and against the same triangle with its
// vertices rotated, AND-combine the two results, roll both into an
// accumulator, and optionally reveal the exact point or
// bind metadata to it. It exists to exercise pkg/session against real
// Groth16 setups, not as a production service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/zklocus/zklocus/pkg/circuits/geopoint"
	"github.com/zklocus/zklocus/pkg/circuits/oracle"
	"github.com/zklocus/zklocus/pkg/circuits/pointinpolygon"
	"github.com/zklocus/zklocus/pkg/circuits/provider"
	"github.com/zklocus/zklocus/pkg/circuits/rollup"
	"github.com/zklocus/zklocus/pkg/geotypes"
	"github.com/zklocus/zklocus/pkg/recur"
	"github.com/zklocus/zklocus/pkg/session"
	"github.com/zklocus/zklocus/pkg/snark"
	"github.com/zklocus/zklocus/pkg/zkconfig"
	"github.com/zklocus/zklocus/pkg/zklog"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a zkconfig YAML file (defaults built in if unset)")
		lat         = flag.Int64("lat", 378977, "query latitude, scaled by 10^factor")
		lon         = flag.Int64("lon", -1224194, "query longitude, scaled by 10^factor")
		factor      = flag.Int("factor", 4, "decimal scaling factor shared by every coordinate in this run")
		triangleArg = flag.String("triangle", "", "optional \"lat1,lon1,lat2,lon2,lat3,lon3\" triangle, scaled by 10^factor (defaults to one around the query point)")
		metadata    = flag.String("metadata", "", "optional metadata blob to bind to the authenticated coordinate")
		reveal      = flag.Bool("reveal", false, "also prove the exact-reveal circuit and print the plaintext coordinate")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := zkconfig.DefaultConfig()
	if *configPath != "" {
		loaded, err := zkconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zklog.New(&zklog.Config{
		Level:  parseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, logger, cfg, *lat, *lon, *factor, *triangleArg, *metadata, *reveal); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zklog.Logger, cfg *zkconfig.Config, lat, lon int64, factor int, triangleArg, metadata string, reveal bool) error {
	registry := snark.NewRegistry()
	if err := setupProvers(registry, logger); err != nil {
		return fmt.Errorf("setup provers: %w", err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sess := session.New(registry, logger)

	key, err := oracle.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate oracle key: %w", err)
	}

	coord, err := geotypes.NewCoordinate(lat, lon, factor)
	if err != nil {
		return fmt.Errorf("build query coordinate: %w", err)
	}

	started := time.Now()
	if err := sess.AuthenticateFromOracle(key, coord); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	logger.ProveTiming("authenticate", started)

	triangle, err := parseTriangle(triangleArg, coord, factor)
	if err != nil {
		return fmt.Errorf("parse triangle: %w", err)
	}

	started = time.Now()
	inside, err := sess.InPolygon("primary", triangle)
	if err != nil {
		return fmt.Errorf("prove point-in-polygon: %w", err)
	}
	logger.ProveTiming("pointinpolygon", started)
	logger.Info("proved point-in-polygon", "inside", inside)

	// Rotating the vertices keeps the region but changes the polygon
	// commitment, so the two proofs may be AND-combined.
	repeat, err := geotypes.NewTriangle(triangle.V2, triangle.V3, triangle.V1)
	if err != nil {
		return fmt.Errorf("build rotated triangle: %w", err)
	}

	started = time.Now()
	if _, err := sess.InPolygon("primary-repeat", repeat); err != nil {
		return fmt.Errorf("prove point-in-polygon (repeat): %w", err)
	}
	combined, err := sess.CombineProofs(session.OpAnd, "primary", "primary-repeat", "primary-and-repeat")
	if err != nil {
		return fmt.Errorf("combine proofs: %w", err)
	}
	logger.ProveTiming("combine(and)", started)
	logger.Info("combined proof", "inside", combined)

	started = time.Now()
	insideCommitment, outsideCommitment, err := sess.Rollup("primary", "primary-repeat")
	if err != nil {
		return fmt.Errorf("rollup: %w", err)
	}
	logger.ProveTiming("rollup", started)
	logger.Info("rolled up accumulator",
		"inside_commitment", insideCommitment.String(),
		"outside_commitment", outsideCommitment.String(),
	)

	if metadata != "" {
		started = time.Now()
		commit, err := sess.AttachMetadata([]byte(metadata))
		if err != nil {
			return fmt.Errorf("attach metadata: %w", err)
		}
		logger.ProveTiming("attach-metadata", started)
		logger.Info("bound metadata", "commitment", commit.String())
	}

	if reveal {
		started = time.Now()
		revealed, err := sess.ExactGeoPoint()
		if err != nil {
			return fmt.Errorf("reveal exact point: %w", err)
		}
		logger.ProveTiming("exact-reveal", started)
		logger.Info("revealed coordinate",
			"latitude", revealed.Latitude.SignedValue().String(),
			"longitude", revealed.Longitude.SignedValue().String(),
		)
	}

	for _, event := range sess.History() {
		logger.Info("session event", "id", event.ID, "seq", event.Seq, "op", event.Op, "detail", event.Detail)
	}
	return nil
}

// setupProvers runs the Groth16 trusted setup for every circuit kind the
// demo exercises, in dependency order: a combinator's placeholder proof
// must be sized against its inner circuit's already-compiled constraint
// system (pkg/recur.Placeholder), so leaves are set up before the
// combinators that recursively verify them.
func setupProvers(registry *snark.Registry, logger *zklog.Logger) error {
	oracleProver, err := registry.Setup(session.ProverOracle, &oracle.Circuit{})
	if err != nil {
		return fmt.Errorf("setup oracle: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverOracle)

	pipProver, err := registry.Setup(session.ProverPointInPolygon, &pointinpolygon.Circuit{})
	if err != nil {
		return fmt.Errorf("setup pointinpolygon: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverPointInPolygon)

	if _, err := registry.Setup(session.ProverProvider, &provider.Circuit{Inner: recur.Placeholder(oracleProver.ConstraintSystem())}); err != nil {
		return fmt.Errorf("setup provider: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverProvider)

	if _, err := registry.Setup(session.ProverAnd, pointinpolygon.PlaceholderAnd(pipProver.ConstraintSystem())); err != nil {
		return fmt.Errorf("setup and: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverAnd)
	if _, err := registry.Setup(session.ProverOr, pointinpolygon.PlaceholderOr(pipProver.ConstraintSystem())); err != nil {
		return fmt.Errorf("setup or: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverOr)

	liftProver, err := registry.Setup(session.ProverRollupLift, &rollup.LiftCircuit{Inner: recur.Placeholder(pipProver.ConstraintSystem())})
	if err != nil {
		return fmt.Errorf("setup rollup.lift: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverRollupLift)

	accPlaceholder := recur.Placeholder(liftProver.ConstraintSystem())
	if _, err := registry.Setup(session.ProverRollupCombine, &rollup.CombineCircuit{Left: accPlaceholder, Right: accPlaceholder}); err != nil {
		return fmt.Errorf("setup rollup.combine: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverRollupCombine)

	if _, err := registry.Setup(session.ProverExactGeoPoint, &geopoint.ExactCircuit{}); err != nil {
		return fmt.Errorf("setup geopoint.exact: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverExactGeoPoint)

	providerProver, err := registry.Get(session.ProverProvider)
	if err != nil {
		return fmt.Errorf("lookup provider prover: %w", err)
	}
	if _, err := registry.Setup(session.ProverMetadata, &geopoint.MetadataCircuit{Inner: recur.Placeholder(providerProver.ConstraintSystem())}); err != nil {
		return fmt.Errorf("setup geopoint.metadata: %w", err)
	}
	logger.Info("compiled circuit", "name", session.ProverMetadata)

	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseTriangle(arg string, query geotypes.Coordinate, factor int) (geotypes.Triangle, error) {
	if arg == "" {
		return defaultTriangle(query, factor)
	}
	parts := strings.Split(arg, ",")
	if len(parts) != 6 {
		return geotypes.Triangle{}, fmt.Errorf("triangle needs 6 comma-separated values, got %d", len(parts))
	}
	values := make([]int64, 6)
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return geotypes.Triangle{}, fmt.Errorf("parse value %d: %w", i, err)
		}
		values[i] = v
	}
	v1, err := geotypes.NewCoordinate(values[0], values[1], factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	v2, err := geotypes.NewCoordinate(values[2], values[3], factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	v3, err := geotypes.NewCoordinate(values[4], values[5], factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	return geotypes.NewTriangle(v1, v2, v3)
}

// defaultTriangle builds a triangle that straddles query so the demo has
// something interesting to report without requiring -triangle on every
// invocation.
func defaultTriangle(query geotypes.Coordinate, factor int) (geotypes.Triangle, error) {
	lat := query.Latitude.SignedValue().Int64()
	lon := query.Longitude.SignedValue().Int64()
	span := int64(1000)

	v1, err := geotypes.NewCoordinate(lat-span, lon-span, factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	v2, err := geotypes.NewCoordinate(lat+span, lon-span, factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	v3, err := geotypes.NewCoordinate(lat, lon+span, factor)
	if err != nil {
		return geotypes.Triangle{}, err
	}
	return geotypes.NewTriangle(v1, v2, v3)
}

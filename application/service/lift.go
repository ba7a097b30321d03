package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/bed"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/liftover"
)

// LiftRequest describes one lift operation.
type LiftRequest struct {
	Table  table.Table
	Source string
	Target string
	// KeepOrig retains the original coordinate and build columns.
	KeepOrig bool
	// KeepIntermediate retains staged files after the lift.
	KeepIntermediate bool
	// BuildLabel replaces the build column value. Empty selects the
	// target build's display label.
	BuildLabel string
	// Columns maps semantic names (chr, start, end, build) to headers,
	// bypassing name matching for those columns.
	Columns map[string]string
}

// LiftResult is the outcome of a successful lift.
type LiftResult struct {
	RunID    string
	Chains   []string
	Lifted   table.Table
	Unlifted table.Table
	// Intermediate lists staged files kept on disk, if any.
	Intermediate []string
}

// Lifter runs the lift pipeline: resolve the chain sequence, stage the
// regions, run each hop, and reconcile the final intervals with the input.
type Lifter struct {
	registry         chain.Registry
	chainDir         string
	runner           liftover.Runner
	extractor        bed.Extractor
	runs             run.Store
	strategy         table.Strategy
	keepIntermediate bool
	logger           *slog.Logger
	now              func() time.Time
}

// LifterOption configures a Lifter.
type LifterOption func(*Lifter)

// WithRunStore records every lift in the given store.
func WithRunStore(s run.Store) LifterOption {
	return func(l *Lifter) {
		l.runs = s
	}
}

// WithStrategy sets the column matching strategy.
func WithStrategy(s table.Strategy) LifterOption {
	return func(l *Lifter) {
		l.strategy = s
	}
}

// WithKeepIntermediate keeps staged files for every lift.
func WithKeepIntermediate(keep bool) LifterOption {
	return func(l *Lifter) {
		l.keepIntermediate = keep
	}
}

// NewLifter creates a Lifter reading chain files from chainDir.
func NewLifter(registry chain.Registry, chainDir string, runner liftover.Runner, logger *slog.Logger, opts ...LifterOption) *Lifter {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Lifter{
		registry:  registry,
		chainDir:  chainDir,
		runner:    runner,
		extractor: bed.NewExtractor(logger),
		strategy:  table.StrategySubstring,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lift converts the request's table from source to target coordinates.
// Invalid builds and missing columns are reported before anything is written.
// A failing hop aborts the whole lift; rows the tool cannot map are returned
// in Unlifted.
func (l *Lifter) Lift(ctx context.Context, req LiftRequest) (LiftResult, error) {
	source, err := genome.ParseBuild(req.Source)
	if err != nil {
		return LiftResult{}, fmt.Errorf("source: %w", err)
	}
	target, err := genome.ParseBuild(req.Target)
	if err != nil {
		return LiftResult{}, fmt.Errorf("target: %w", err)
	}
	chains, err := l.registry.ResolveBuilds(source, target)
	if err != nil {
		return LiftResult{}, err
	}

	coords, err := l.resolver(req.Columns).Coordinates(req.Table.Columns())
	if err != nil {
		return LiftResult{}, err
	}

	chainPaths := make([]string, len(chains))
	for i, name := range chains {
		path := filepath.Join(l.chainDir, name)
		if _, err := os.Stat(path); err != nil {
			return LiftResult{}, fmt.Errorf("%w: %s (run setup first)", ErrChainFileMissing, path)
		}
		chainPaths[i] = path
	}

	label := req.BuildLabel
	if label == "" {
		label = target.Label()
	}

	r := run.New(uuid.NewString(), source, target, chains, req.Table.Len(), l.now())
	logger := l.logger.With(
		slog.String("run_id", r.ID()),
		slog.String("source", source.String()),
		slog.String("target", target.String()),
	)
	logger.Info("lift started", slog.Int("rows", req.Table.Len()), slog.Any("chains", chains))

	keep := req.KeepIntermediate || l.keepIntermediate
	rec, staged, err := l.execute(ctx, logger, req.Table, coords, chainPaths, req.KeepOrig, label)
	if !keep {
		l.cleanup(logger, staged)
		staged = nil
	}
	if err != nil {
		l.record(ctx, logger, r.Fail(err, l.now()))
		return LiftResult{}, err
	}

	l.record(ctx, logger, r.Succeed(rec.Lifted.Len(), rec.Unlifted.Len(), l.now()))
	logger.Info("lift finished",
		slog.Int("lifted", rec.Lifted.Len()),
		slog.Int("unlifted", rec.Unlifted.Len()),
	)

	return LiftResult{
		RunID:        r.ID(),
		Chains:       chains,
		Lifted:       rec.Lifted,
		Unlifted:     rec.Unlifted,
		Intermediate: staged,
	}, nil
}

// execute stages, lifts and reconciles. It returns every file it created,
// including on failure.
func (l *Lifter) execute(
	ctx context.Context,
	logger *slog.Logger,
	t table.Table,
	coords table.Coordinates,
	chainPaths []string,
	keepOrig bool,
	label string,
) (Reconciliation, []string, error) {
	var staged []string

	if err := os.MkdirAll(l.runner.WorkDir(), 0o755); err != nil {
		return Reconciliation{}, staged, fmt.Errorf("create work dir: %w", err)
	}

	input := l.runner.StagePath(liftover.KindInput)
	staged = append(staged, input)
	summary, err := l.extractor.Extract(input, t, coords)
	if err != nil {
		return Reconciliation{}, staged, err
	}
	if len(summary.Skipped) > 0 {
		logger.Warn("rows with unusable coordinates", slog.Int("count", len(summary.Skipped)))
	}

	current := input
	for i, chainPath := range chainPaths {
		logger.Info("running hop",
			slog.Int("hop", i+1),
			slog.Int("of", len(chainPaths)),
			slog.String("chain", filepath.Base(chainPath)),
		)
		hop, err := l.runner.RunHop(ctx, current, chainPath)
		staged = append(staged, hop.Files()...)
		if err != nil {
			return Reconciliation{}, staged, fmt.Errorf("hop %d (%s): %w", i+1, filepath.Base(chainPath), err)
		}
		current = hop.Mapped
	}

	mapped, err := bed.ReadFile(current)
	if err != nil {
		return Reconciliation{}, staged, err
	}

	rec, err := Reconcile(t, mapped, coords, keepOrig, label)
	return rec, staged, err
}

func (l *Lifter) resolver(columns map[string]string) table.Resolver {
	opts := []table.ResolverOption{table.WithStrategy(l.strategy)}
	for semantic, name := range columns {
		opts = append(opts, table.WithOverride(semantic, name))
	}
	return table.NewResolver(opts...)
}

func (l *Lifter) cleanup(logger *slog.Logger, files []string) {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove staged file", slog.String("path", f), slog.String("error", err.Error()))
		}
	}
}

func (l *Lifter) record(ctx context.Context, logger *slog.Logger, r run.Run) {
	if l.runs == nil {
		return
	}
	if _, err := l.runs.Save(ctx, r); err != nil {
		logger.Warn("failed to record run", slog.String("error", err.Error()))
	}
}

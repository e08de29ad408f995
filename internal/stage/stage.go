// Package stage wires the generalization algorithm (internal/generalize)
// to the corpus and executor collaborators and enforces the entry-point
// guardrails: idempotency, baseline-stability, and the persisted-size
// ceiling (spec.md §4.6).
package stage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fuzzkit/genstage/internal/corpus"
	"github.com/fuzzkit/genstage/internal/coverage"
	"github.com/fuzzkit/genstage/internal/executor"
	"github.com/fuzzkit/genstage/internal/generalize"
	"github.com/fuzzkit/genstage/internal/slot"
)

// MaxGeneralizedLen is the default persisted-size ceiling (spec.md §6).
const MaxGeneralizedLen = 8192

// Stage drives one generalization run per Perform call.
type Stage struct {
	observerName string
	sizeCeiling  int
	logger       *slog.Logger
}

// New returns a Stage that verifies coverage through the named map
// observer.
func New(observerName string, opts ...Option) *Stage {
	s := &Stage{
		observerName: observerName,
		sizeCeiling:  MaxGeneralizedLen,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Perform runs the full generalization pipeline against the corpus
// entry at idx. It is a no-op success if the entry is already
// generalized or its baseline execution is unstable (spec.md §4.6).
func (s *Stage) Perform(
	ctx context.Context,
	ex executor.Executor,
	st executor.State,
	store corpus.Store,
	idx int,
) error {
	entry, err := store.Entry(idx)
	if err != nil {
		return fmt.Errorf("load entry %d: %w", idx, err)
	}

	in, err := entry.LoadInput()
	if err != nil {
		return fmt.Errorf("load input for entry %d: %w", idx, err)
	}

	if in.Generalized != nil {
		s.logger.Debug("generalize: already generalized, skipping", "entry", idx)
		return nil
	}

	meta, ok := entry.Metadata()
	if !ok {
		return fmt.Errorf("%w: entry %d", ErrMetadataNotFound, idx)
	}

	if len(meta.Novelties) == 0 {
		return fmt.Errorf("%w: entry %d", ErrNoveltiesEmpty, idx)
	}

	novelties := make(coverage.NoveltySet, len(meta.Novelties))
	copy(novelties, meta.Novelties)

	if _, ok := ex.Observer(s.observerName); !ok {
		return fmt.Errorf("%w: %q", ErrObserverNotFound, s.observerName)
	}

	probe := &generalize.Probe{
		Executor:     ex,
		State:        st,
		ObserverName: s.observerName,
		Novelties:    novelties,
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	stable, err := probe.Verify(ctx, in.Bytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutorFailed, err)
	}

	if !stable {
		s.logger.Debug("generalize: unstable baseline, refusing to generalize", "entry", idx)
		return nil
	}

	p := slot.FromBytes(in.Bytes)

	out, err := generalize.Run(ctx, probe, p, s.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutorFailed, err)
	}

	if len(out) > s.sizeCeiling {
		s.logger.Info("generalize: exceeds size ceiling, discarding", "entry", idx, "slots", len(out), "ceiling", s.sizeCeiling)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err = store.Entry(idx)
	if err != nil {
		return fmt.Errorf("reload entry %d: %w", idx, err)
	}

	in, err = entry.LoadInput()
	if err != nil {
		return fmt.Errorf("reload input for entry %d: %w", idx, err)
	}

	in.Generalized = corpus.ToSlotTags(out)

	if err := entry.StoreInput(in); err != nil {
		return fmt.Errorf("store generalized input for entry %d: %w", idx, err)
	}

	s.logger.Info("generalize: done", "entry", idx, "before", len(in.Bytes), "after", len(slot.Materialize(out)))

	return nil
}

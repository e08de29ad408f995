// Package generalize implements the core of the generalization stage:
// the coverage Witness Probe, the three range-deletion nomination
// strategies, and the fixed 18-step phase schedule that drives them
// (spec.md §4, §9). It has no notion of a corpus or a fuzzer driver —
// those live in internal/corpus and internal/stage.
package generalize

import (
	"context"
	"fmt"

	"github.com/fuzzkit/genstage/internal/coverage"
	"github.com/fuzzkit/genstage/internal/executor"
)

const (
	featurePreExec  = "pre_exec_observers"
	featureTarget   = "target_execution"
	featurePostExec = "post_exec_observers"
)

// Probe is the Coverage Witness Probe (spec.md §4.1): a single target
// execution plus a coverage check confirming every index in Novelties
// is still set. A flaky miss is treated as novelty lost; the stage
// never compensates for target non-determinism beyond this one probe.
type Probe struct {
	Executor     executor.Executor
	State        executor.State
	ObserverName string
	Novelties    coverage.NoveltySet
}

// Verify runs candidate through the target and reports whether the
// coverage observer still sets every novelty index. It increments
// State.Executions() exactly once per completed target run, whether or
// not the novelties are still covered; if the pre-exec hook or the run
// itself fails, it returns the error without incrementing.
func (p *Probe) Verify(ctx context.Context, candidate []byte) (bool, error) {
	p.State.StartTimer(featurePreExec)

	if err := p.Executor.PreExecAll(ctx, candidate); err != nil {
		return false, fmt.Errorf("pre-exec observers: %w", err)
	}

	p.State.MarkFeatureTime(featurePreExec)

	p.State.StartTimer(featureTarget)

	if err := p.Executor.RunTarget(ctx, candidate); err != nil {
		return false, fmt.Errorf("run target: %w", err)
	}

	p.State.MarkFeatureTime(featureTarget)

	*p.State.Executions()++

	p.State.StartTimer(featurePostExec)

	if err := p.Executor.PostExecAll(ctx, candidate); err != nil {
		return false, fmt.Errorf("post-exec observers: %w", err)
	}

	p.State.MarkFeatureTime(featurePostExec)

	obs, ok := p.Executor.Observer(p.ObserverName)
	if !ok {
		return false, fmt.Errorf("%w: %q", coverage.ErrObserverNotFound, p.ObserverName)
	}

	return obs.HowManySet(p.Novelties) == len(p.Novelties), nil
}

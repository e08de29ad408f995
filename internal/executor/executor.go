// Package executor defines the target-execution collaborators the
// generalization stage drives: the pre/post-exec observer hooks, the
// run itself, and the execution counter the Witness Probe must
// increment exactly once per call. Concrete implementations are either
// in-process stubs (tests, the CLI demo target) or a subprocess runner
// that drives a real target binary.
package executor

import (
	"context"

	"github.com/fuzzkit/genstage/internal/coverage"
)

// Executor runs a candidate byte string against the target and exposes
// the coverage observer the stage consults afterward.
type Executor interface {
	// PreExecAll invokes every observer's pre-execution hook.
	PreExecAll(ctx context.Context, candidate []byte) error

	// RunTarget executes the target against candidate.
	RunTarget(ctx context.Context, candidate []byte) error

	// PostExecAll invokes every observer's post-execution hook.
	PostExecAll(ctx context.Context, candidate []byte) error

	// Observer looks up a coverage observer by the name it was
	// registered under. The second return value is false if no such
	// observer exists.
	Observer(name string) (coverage.Observer, bool)
}

// State carries the execution counter and optional performance-timer
// hooks the stage touches once per Witness Probe call, mirroring the
// fuzzer state collaborator from spec.md §6.
type State interface {
	// Executions returns a pointer to the execution counter. The stage
	// increments *Executions() by exactly one per probe.
	Executions() *uint64

	// StartTimer marks the beginning of a named perf feature. No-op if
	// the implementation does not track perf features.
	StartTimer(feature string)

	// MarkFeatureTime accumulates elapsed time since the matching
	// StartTimer call under feature. No-op if unsupported.
	MarkFeatureTime(feature string)
}

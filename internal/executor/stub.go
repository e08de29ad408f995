package executor

import (
	"context"

	"github.com/fuzzkit/genstage/internal/coverage"
)

// CoverageFunc computes the set of coverage-map indices a candidate
// input hits. It stands in for a real instrumented target + map
// observer: tests and the CLI's "demo" command supply one directly
// instead of forking a process.
type CoverageFunc func(candidate []byte) map[int]struct{}

// StubExecutor is an in-process [Executor] backed by a [CoverageFunc].
// It never forks a process; RunTarget just evaluates the function.
type StubExecutor struct {
	observerName string
	fn           CoverageFunc
	hit          map[int]struct{}
}

// NewStubExecutor returns a StubExecutor whose single observer is
// registered under observerName.
func NewStubExecutor(observerName string, fn CoverageFunc) *StubExecutor {
	return &StubExecutor{observerName: observerName, fn: fn}
}

func (s *StubExecutor) PreExecAll(_ context.Context, _ []byte) error {
	s.hit = nil
	return nil
}

func (s *StubExecutor) RunTarget(_ context.Context, candidate []byte) error {
	s.hit = s.fn(candidate)
	return nil
}

func (s *StubExecutor) PostExecAll(_ context.Context, _ []byte) error {
	return nil
}

func (s *StubExecutor) Observer(name string) (coverage.Observer, bool) {
	if name != s.observerName {
		return nil, false
	}

	return stubObserver{s}, true
}

// stubObserver adapts StubExecutor's last-run hit set to
// [coverage.Observer].
type stubObserver struct {
	ex *StubExecutor
}

func (o stubObserver) Name() string { return o.ex.observerName }

func (o stubObserver) HowManySet(idx []int) int {
	n := 0

	for _, i := range idx {
		if _, ok := o.ex.hit[i]; ok {
			n++
		}
	}

	return n
}

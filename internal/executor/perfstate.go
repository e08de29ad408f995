package executor

import "time"

// PerfState is a minimal [State] implementation: a plain execution
// counter plus optional per-feature timing, the Go equivalent of the
// original's start_timer!/mark_feature_time! macros (spec.md §9)
// without macro magic — just methods on a struct.
type PerfState struct {
	execs     uint64
	starts    map[string]time.Time
	durations map[string]time.Duration
}

// NewPerfState returns a zeroed PerfState ready for use.
func NewPerfState() *PerfState {
	return &PerfState{
		starts:    make(map[string]time.Time),
		durations: make(map[string]time.Duration),
	}
}

// Executions returns a pointer to the execution counter.
func (p *PerfState) Executions() *uint64 {
	return &p.execs
}

// StartTimer records the current time under feature.
func (p *PerfState) StartTimer(feature string) {
	p.starts[feature] = time.Now()
}

// MarkFeatureTime accumulates elapsed time since the last StartTimer
// call for feature. No-op if StartTimer was never called for it.
func (p *PerfState) MarkFeatureTime(feature string) {
	start, ok := p.starts[feature]
	if !ok {
		return
	}

	p.durations[feature] += time.Since(start)
	delete(p.starts, feature)
}

// FeatureTime returns the accumulated duration recorded for feature.
func (p *PerfState) FeatureTime(feature string) time.Duration {
	return p.durations[feature]
}

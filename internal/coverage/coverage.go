// Package coverage defines the novelty-set data the generalization stage
// must preserve, and the map-observer contract it is checked against.
package coverage

// NoveltySet is the finite set of coverage-map indices a testcase was
// shown to newly cover. It is immutable for the lifetime of a
// generalization run (spec.md §3: |N| >= 1).
type NoveltySet []int

// Observer reports how many of a set of coverage-map indices are
// currently set. Implementations are looked up by name on an
// [github.com/fuzzkit/genstage/internal/executor.Executor].
type Observer interface {
	// Name identifies this observer so the stage can look it up by the
	// configured map-observer name.
	Name() string

	// HowManySet returns the number of indices in idx whose coverage
	// counter is currently non-zero.
	HowManySet(idx []int) int
}

package stage

import "errors"

var (
	// ErrMetadataNotFound is returned when the corpus entry has no
	// novelty metadata attached.
	ErrMetadataNotFound = errors.New("genstage: novelty metadata not found")

	// ErrObserverNotFound is returned when the named map observer could
	// not be found on the executor.
	ErrObserverNotFound = errors.New("genstage: map observer not found")

	// ErrNoveltiesEmpty is returned when the entry's novelty metadata
	// carries zero indices. An empty novelty set would make the Witness
	// Probe vacuously succeed for every candidate (spec.md §3: |N| ≥ 1).
	ErrNoveltiesEmpty = errors.New("genstage: novelty set is empty")

	// ErrExecutorFailed wraps any error the executor returned during a
	// probe.
	ErrExecutorFailed = errors.New("genstage: executor error")
)

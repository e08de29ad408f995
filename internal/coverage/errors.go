package coverage

import "errors"

// ErrObserverNotFound indicates the named map observer could not be
// found on the executor (spec.md §7: "missing observer").
var ErrObserverNotFound = errors.New("coverage: observer not found")

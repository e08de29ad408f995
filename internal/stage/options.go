package stage

import "log/slog"

// Option configures optional, non-default behavior on a Stage.
type Option func(*Stage)

// WithSizeCeiling overrides MAX_GENERALIZED_LEN. Intended for tests
// that want a small ceiling without building an 8192-byte fixture.
func WithSizeCeiling(n int) Option {
	return func(s *Stage) {
		s.sizeCeiling = n
	}
}

// WithLogger sets the logger used for phase/summary lines. Defaults to
// slog.Default() if never set.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stage) {
		s.logger = logger
	}
}

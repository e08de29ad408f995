package cli

import "errors"

var (
	errTargetRequired       = errors.New("cli: --target is required")
	errCoverageFileRequired = errors.New("cli: --coverage-file is required")
	errNoveltiesRequired    = errors.New("cli: --novelty must be given at least once")
	errSeedIndexRequired    = errors.New("cli: --index is required")
	errDemoByteRequired     = errors.New("cli: --byte is required")
)

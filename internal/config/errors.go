package config

import "errors"

var (
	errConfigFileNotFound = errors.New("config: file not found")
	errConfigFileRead     = errors.New("config: failed to read file")
	errConfigInvalid      = errors.New("config: invalid config in")
	errCorpusDirEmpty     = errors.New("config: corpus_dir must not be empty")
)

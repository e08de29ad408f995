package executor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fuzzkit/genstage/internal/coverage"
	"github.com/fuzzkit/genstage/pkg/fs"
)

// inputPlaceholder and coveragePlaceholder are substituted in
// [SubprocessConfig.Args] with the real temp file paths before exec.
const (
	inputPlaceholder    = "{input}"
	coveragePlaceholder = "{coverage}"
)

// SubprocessConfig configures a [SubprocessExecutor].
type SubprocessConfig struct {
	// ObserverName is the name this executor's single observer answers
	// to, matching the stage's configured map-observer name.
	ObserverName string

	// Command is the target binary to run.
	Command string

	// Args are passed to Command. Any argument equal to "{input}" is
	// replaced with the candidate's temp file path, and any argument
	// equal to "{coverage}" with the coverage-bitmap file path the
	// target is expected to write newline-separated set indices to.
	Args []string

	// InputPath is the temp file the candidate bytes are written to
	// before each run.
	InputPath string

	// CoveragePath is the file the target writes covered indices to,
	// one decimal integer per line. Stale contents are removed before
	// each run so a target that doesn't write the file reports no
	// coverage rather than stale coverage from a previous run.
	CoveragePath string
}

// SubprocessExecutor drives a real target binary: it writes the
// candidate to a file, execs the configured command, and parses the
// coverage file the target is expected to produce. This realizes the
// spec.md §6 executor/observer collaborators for a target that is an
// actual process rather than an in-process stub.
type SubprocessExecutor struct {
	cfg  SubprocessConfig
	fsys fs.FS
	hit  map[int]struct{}
}

// NewSubprocessExecutor returns a SubprocessExecutor using fsys for all
// file I/O. Panics if fsys is nil.
func NewSubprocessExecutor(cfg SubprocessConfig, fsys fs.FS) *SubprocessExecutor {
	if fsys == nil {
		panic("fsys is nil")
	}

	return &SubprocessExecutor{cfg: cfg, fsys: fsys}
}

func (s *SubprocessExecutor) PreExecAll(_ context.Context, _ []byte) error {
	s.hit = nil

	err := s.fsys.Remove(s.cfg.CoveragePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale coverage file %q: %w", s.cfg.CoveragePath, err)
	}

	return nil
}

func (s *SubprocessExecutor) RunTarget(ctx context.Context, candidate []byte) error {
	if err := s.fsys.WriteFile(s.cfg.InputPath, candidate, 0o644); err != nil {
		return fmt.Errorf("write candidate to %q: %w", s.cfg.InputPath, err)
	}

	args := make([]string, len(s.cfg.Args))
	for i, a := range s.cfg.Args {
		switch a {
		case inputPlaceholder:
			args[i] = s.cfg.InputPath
		case coveragePlaceholder:
			args[i] = s.cfg.CoveragePath
		default:
			args[i] = a
		}
	}

	cmd := exec.CommandContext(ctx, s.cfg.Command, args...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run target %q: %w", s.cfg.Command, err)
	}

	return nil
}

func (s *SubprocessExecutor) PostExecAll(_ context.Context, _ []byte) error {
	data, err := s.fsys.ReadFile(s.cfg.CoveragePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.hit = map[int]struct{}{}
			return nil
		}

		return fmt.Errorf("read coverage file %q: %w", s.cfg.CoveragePath, err)
	}

	hit := make(map[int]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		idx, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("parse coverage index %q: %w", line, err)
		}

		hit[idx] = struct{}{}
	}

	s.hit = hit

	return nil
}

func (s *SubprocessExecutor) Observer(name string) (coverage.Observer, bool) {
	if name != s.cfg.ObserverName {
		return nil, false
	}

	return subprocessObserver{s}, true
}

type subprocessObserver struct {
	ex *SubprocessExecutor
}

func (o subprocessObserver) Name() string { return o.ex.cfg.ObserverName }

func (o subprocessObserver) HowManySet(idx []int) int {
	n := 0

	for _, i := range idx {
		if _, ok := o.ex.hit[i]; ok {
			n++
		}
	}

	return n
}

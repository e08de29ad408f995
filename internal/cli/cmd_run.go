package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fuzzkit/genstage/internal/config"
	"github.com/fuzzkit/genstage/internal/corpus"
	"github.com/fuzzkit/genstage/internal/executor"
	"github.com/fuzzkit/genstage/internal/stage"
	"github.com/fuzzkit/genstage/pkg/fs"

	flag "github.com/spf13/pflag"
)

// RunCmd runs the generalization stage over one or every entry in the
// configured corpus directory against a real subprocess target.
func RunCmd(cfg config.Config, workDir string) *Command {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	index := flags.Int("index", -1, "Generalize only this corpus index (default: all entries)")
	target := flags.String("target", "", "Target command to run")
	targetArgs := flags.StringArray("target-arg", nil, "Argument to the target; \"{input}\"/\"{coverage}\" are substituted (repeatable)")
	coveragePath := flags.String("coverage-file", "", "Path the target writes newline-separated coverage indices to")

	return &Command{
		Flags: flags,
		Usage: "run [flags]",
		Short: "Generalize one or all corpus entries against a real target",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if *target == "" {
				return errTargetRequired
			}

			if *coveragePath == "" {
				return errCoverageFileRequired
			}

			store := corpus.NewFileStore(resolveDir(workDir, cfg.CorpusDir), fs.NewReal())

			indices := []int{*index}
			if *index < 0 {
				all, err := store.Indices()
				if err != nil {
					return err
				}

				indices = all
			}

			ex := executor.NewSubprocessExecutor(executor.SubprocessConfig{
				ObserverName: cfg.ObserverName,
				Command:      *target,
				Args:         *targetArgs,
				InputPath:    filepath.Join(os.TempDir(), "genstage-candidate"),
				CoveragePath: *coveragePath,
			}, fs.NewReal())

			st := executor.NewPerfState()
			s := stage.New(cfg.ObserverName)

			for _, idx := range indices {
				if err := s.Perform(ctx, ex, st, store, idx); err != nil {
					return fmt.Errorf("entry %d: %w", idx, err)
				}

				o.Printf("entry %d: done (%d executions so far)\n", idx, *st.Executions())
			}

			return nil
		},
	}
}

func resolveDir(workDir, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(workDir, dir)
}

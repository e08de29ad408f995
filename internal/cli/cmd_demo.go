package cli

import (
	"context"

	"github.com/fuzzkit/genstage/internal/config"
	"github.com/fuzzkit/genstage/internal/coverage"
	"github.com/fuzzkit/genstage/internal/executor"
	"github.com/fuzzkit/genstage/internal/generalize"
	"github.com/fuzzkit/genstage/internal/slot"

	flag "github.com/spf13/pflag"
)

// DemoCmd runs the stage in-process against a stub target whose only
// novelty is "does the candidate contain this byte", so the algorithm
// can be exercised and inspected without wiring a real target binary.
func DemoCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("demo", flag.ContinueOnError)
	input := flags.String("input", "", "Input string to generalize")
	witness := flags.String("byte", "", "Single byte that must survive generalization")

	return &Command{
		Flags: flags,
		Usage: "demo [flags]",
		Short: "Run the stage in-process against a stub target",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if len(*witness) != 1 {
				return errDemoByteRequired
			}

			want := (*witness)[0]

			ex := executor.NewStubExecutor(cfg.ObserverName, func(candidate []byte) map[int]struct{} {
				for _, b := range candidate {
					if b == want {
						return map[int]struct{}{0: {}}
					}
				}

				return nil
			})

			probe := &generalize.Probe{
				Executor:     ex,
				State:        executor.NewPerfState(),
				ObserverName: cfg.ObserverName,
				Novelties:    coverage.NoveltySet{0},
			}

			p := slot.FromBytes([]byte(*input))

			out, err := generalize.Run(ctx, probe, p, nil)
			if err != nil {
				return err
			}

			o.Printf("before: %q (%d bytes)\n", *input, len(*input))
			o.Printf("after:  %q (%d bytes)\n", slot.Materialize(out), len(slot.Materialize(out)))

			return nil
		},
	}
}

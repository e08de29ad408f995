package cli

import (
	"context"
	"io"
	"os"

	"github.com/fuzzkit/genstage/internal/config"
	"github.com/fuzzkit/genstage/internal/corpus"
	"github.com/fuzzkit/genstage/pkg/fs"

	flag "github.com/spf13/pflag"
)

// SeedCmd writes a single corpus entry's raw bytes and novelty
// metadata to the configured corpus directory, the one-time setup a
// real fuzzer's corpus/feedback pipeline would otherwise do.
func SeedCmd(cfg config.Config, workDir string) *Command {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	index := flags.Int("index", -1, "Corpus index to seed")
	inputFile := flags.String("input-file", "", "File containing the raw input bytes (default: stdin)")
	novelties := flags.IntSlice("novelty", nil, "Coverage-map index that must stay set (repeatable)")
	reason := flags.String("reason", "", "Free-form note describing why this index matters")

	return &Command{
		Flags: flags,
		Usage: "seed [flags]",
		Short: "Seed a corpus entry with raw bytes and novelty metadata",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if *index < 0 {
				return errSeedIndexRequired
			}

			if len(*novelties) == 0 {
				return errNoveltiesRequired
			}

			var (
				data []byte
				err  error
			)

			if *inputFile == "" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(*inputFile) //nolint:gosec // operator-controlled CLI flag
			}

			if err != nil {
				return err
			}

			store := corpus.NewFileStore(resolveDir(workDir, cfg.CorpusDir), fs.NewReal())

			if err := store.Seed(*index, data, corpus.Metadata{Novelties: *novelties, Reason: *reason}); err != nil {
				return err
			}

			o.Printf("seeded entry %d (%d bytes, %d novelty indices)\n", *index, len(data), len(*novelties))

			return nil
		},
	}
}


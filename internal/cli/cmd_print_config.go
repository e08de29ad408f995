package cli

import (
	"context"

	"github.com/fuzzkit/genstage/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd prints the effective, merged configuration.
func PrintConfigCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Print the effective configuration as JSON",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			out, err := config.Format(cfg)
			if err != nil {
				return err
			}

			o.Println(out)

			return nil
		},
	}
}

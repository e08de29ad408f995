package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// Version is the CLI's reported version string, overridden at build
// time via -ldflags.
var Version = "dev"

// VersionCmd prints the CLI version.
func VersionCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("version", flag.ContinueOnError),
		Usage: "version",
		Short: "Print the genstage version",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println("genstage", Version)
			return nil
		},
	}
}

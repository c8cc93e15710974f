package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete entries by description" }
func (*deleteCmd) Usage() string {
	return `cfc delete <desc>...

  Deletes every entry whose description matches exactly.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(f.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no description given")
		return subcommands.ExitUsageError
	}
	s, err := OpenSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	removed := 0
	for _, desc := range f.Args() {
		removed += s.Remove(desc)
	}
	if removed == 0 {
		fmt.Fprintln(os.Stderr, "Error: no matching entry")
		return subcommands.ExitFailure
	}
	if err := SaveSeries(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %d entries.\n", removed)
	return subcommands.ExitSuccess
}

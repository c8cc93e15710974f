package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/xiruizhao/cashflow-forecast"
)

// shareCmd holds the flags for the 'share' subcommand.
type shareCmd struct {
	doImport bool
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "export or import the series as a compact string" }
func (*shareCmd) Usage() string {
	return `cfc share [-import [<string>]]

  Without -import, prints the series as a compact string (gzipped,
  URL-safe base64) suitable for pasting into a chat or a URL.

  With -import, replaces the series file with the decoded argument, or
  with stdin when no argument is given. Plain CSV is accepted too.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.doImport, "import", false, "Replace the series file with the decoded input")
}

func (c *shareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.doImport {
		s, err := OpenSeries()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		str, err := cashflow.EncodeSeriesString(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(str)
		return subcommands.ExitSuccess
	}

	input := strings.Join(f.Args(), "")
	if input == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		input = string(raw)
	}
	s, err := cashflow.DecodeSeriesString(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := SaveSeries(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d entries into %s.\n", s.Len(), seriesFile())
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/xiruizhao/cashflow-forecast/cmd"
)

// completion describes the CLI for shell completion. It runs (and exits)
// only when the shell asks for completions.
func completion() {
	dates := predict.Set{"0d", "+1m", "+1y", "+2y"}
	spec := &complete.Command{
		Flags: map[string]complete.Predictor{
			"f": predict.Files("*.csv"),
		},
		Sub: map[string]*complete.Command{
			"forecast": {Flags: map[string]complete.Predictor{
				"s": dates, "e": dates, "shares": predict.Nothing, "offline": predict.Nothing, "price": predict.Something,
			}},
			"add": {Flags: map[string]complete.Predictor{
				"desc": predict.Something, "a": predict.Something, "s": dates, "r": predict.Something,
				"repeat":   predict.Set{"never", "daily", "weekly", "monthly", "yearly"},
				"interval": predict.Something, "byday": predict.Something, "monthday": predict.Something,
				"month": predict.Something, "until": dates, "count": predict.Something,
			}},
			"delete": {},
			"list":   {},
			"fmt":    {},
			"rule":   {Flags: map[string]complete.Predictor{"s": dates, "e": dates}},
			"share":  {Flags: map[string]complete.Predictor{"import": predict.Nothing}},
			"topic":  {Args: predict.Set{"readme", "accounts", "dates", "recurrence", "forecast", "sharing"}},
			"assist": {},
		},
	}
	spec.Complete(path.Base(os.Args[0]))
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

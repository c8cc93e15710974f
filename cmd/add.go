package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/xiruizhao/cashflow-forecast"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	desc     string
	accounts string
	start    string
	rule     string
	repeat   string
	interval int
	byday    string
	monthday int
	month    int
	until    string
	count    int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a cash-flow entry to the series" }
func (*addCmd) Usage() string {
	return `cfc add -desc <desc> -a <accounts> [-s <date>] [recurrence flags]

  Adds an entry. The recurrence is given either as a raw rule with -r, or
  built from -repeat and its companion flags:

    cfc add -desc paycheck -a "checking+70 savings+140" -repeat weekly -interval 2 -byday FR
    cfc add -desc rent -a checking-1500 -repeat monthly -monthday 1
    cfc add -desc bonus -a checking+5000 -repeat yearly -month 12 -monthday 15
    cfc add -desc balance -a "checking+1820 savings+3640"

  Without -r and -repeat the entry occurs exactly once, on its start date.
  A desc of "balance" marks the starting balances; a desc ending in
  "_override" replaces the base entry's occurrences on the same date.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.desc, "desc", "", "Description of the entry")
	f.StringVar(&c.accounts, "a", "", "Per-account deltas, e.g. \"checking+70 savings-140\"")
	f.StringVar(&c.start, "s", "0d", "Start date (defaults to today)")
	f.StringVar(&c.rule, "r", "", "Raw recurrence rule, e.g. \"FREQ=WEEKLY;BYDAY=MO,FR\"")
	f.StringVar(&c.repeat, "repeat", "", "Repeat frequency: never, daily, weekly, monthly or yearly")
	f.IntVar(&c.interval, "interval", 1, "Repeat every n periods")
	f.StringVar(&c.byday, "byday", "", "Weekdays for -repeat weekly (\"MO,FR\"), or an ordinal weekday for monthly/yearly (\"2FR\", \"-1MO\")")
	f.IntVar(&c.monthday, "monthday", 0, "Day of the month for -repeat monthly/yearly (negative counts from the end)")
	f.IntVar(&c.month, "month", 0, "Month (1-12) for -repeat yearly")
	f.StringVar(&c.until, "until", "", "Repeat until this date, inclusive")
	f.IntVar(&c.count, "count", 0, "Repeat at most n times")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rule, err := c.buildRule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	start, err := cashflow.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	entry, err := cashflow.NewEntry(c.desc, c.accounts, start, rule)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := OpenSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Append(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := SaveSeries(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %q starting %s with rule %q.\n", entry.Desc, entry.DTStart, entry.RRule)
	return subcommands.ExitSuccess
}

// buildRule turns the recurrence flags into a rule string. A raw -r rule
// wins; otherwise the structured flags select one recurrence variant.
func (c *addCmd) buildRule() (string, error) {
	if c.rule != "" {
		if c.repeat != "" {
			return "", fmt.Errorf("-r and -repeat are mutually exclusive")
		}
		if err := cashflow.ValidateRule(c.rule); err != nil {
			return "", err
		}
		return c.rule, nil
	}

	end := cashflow.End(cashflow.Forever{})
	switch {
	case c.until != "" && c.count > 0:
		return "", fmt.Errorf("-until and -count are mutually exclusive")
	case c.until != "":
		until, err := cashflow.ParseDate(c.until)
		if err != nil {
			return "", err
		}
		end = cashflow.Until{Date: until}
	case c.count > 0:
		end = cashflow.Count{N: c.count}
	}

	var sel cashflow.Recurrence
	switch c.repeat {
	case "", "never":
		sel = cashflow.Never{}
	case "daily":
		sel = cashflow.Daily{Interval: c.interval, End: end}
	case "weekly":
		var weekdays []time.Weekday
		for _, code := range strings.Split(c.byday, ",") {
			wd, err := cashflow.ParseWeekdayCode(code)
			if err != nil {
				return "", err
			}
			weekdays = append(weekdays, wd)
		}
		sel = cashflow.Weekly{Interval: c.interval, Weekdays: weekdays, End: end}
	case "monthly":
		on, err := c.dayPattern()
		if err != nil {
			return "", err
		}
		sel = cashflow.Monthly{Interval: c.interval, On: on, End: end}
	case "yearly":
		on, err := c.dayPattern()
		if err != nil {
			return "", err
		}
		sel = cashflow.Yearly{Interval: c.interval, Month: time.Month(c.month), On: on, End: end}
	default:
		return "", fmt.Errorf("unknown -repeat %q", c.repeat)
	}
	return sel.Encode()
}

// dayPattern picks between -monthday and an ordinal -byday like "2FR".
func (c *addCmd) dayPattern() (cashflow.MonthlyOn, error) {
	if c.monthday != 0 && c.byday != "" {
		return nil, fmt.Errorf("-monthday and -byday are mutually exclusive")
	}
	if c.monthday != 0 {
		return cashflow.MonthDay(c.monthday), nil
	}
	if len(c.byday) < 3 {
		return nil, fmt.Errorf("want an ordinal weekday like \"2FR\", got %q", c.byday)
	}
	ord, err := strconv.Atoi(c.byday[:len(c.byday)-2])
	if err != nil {
		return nil, fmt.Errorf("invalid ordinal in %q: %w", c.byday, err)
	}
	wd, err := cashflow.ParseWeekdayCode(c.byday[len(c.byday)-2:])
	if err != nil {
		return nil, err
	}
	return cashflow.OrdinalWeekday{Ord: ord, Weekday: wd}, nil
}

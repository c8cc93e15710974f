package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/xiruizhao/cashflow-forecast"
	"github.com/xiruizhao/cashflow-forecast/renderer"
)

// forecastCmd holds the flags for the 'forecast' subcommand.
type forecastCmd struct {
	start   string
	end     string
	shares  bool
	offline bool
	prices  priceFlag
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "display the projected per-account running balance" }
func (*forecastCmd) Usage() string {
	return `cfc forecast [-s <date>] [-e <date>] [-shares] [-offline] [-price SYM=V]

  Expands every entry over the date window and displays the cumulative
  per-account ledger. Ticker accounts are converted to currency at their
  current market price.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start of the window (defaults to the balance entry's date, else today)")
	f.StringVar(&c.end, "e", "+2y", "End of the window")
	f.BoolVar(&c.shares, "shares", false, "Keep ticker accounts in share counts instead of currency")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch market prices; unknown tickers value at 0")
	f.Var(&c.prices, "price", "Fix a ticker price, e.g. -price VTI=302.77 (repeatable)")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	within, err := c.window(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	forecast, err := s.Forecast(within)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	opts := renderer.ForecastOptions{}
	if !c.shares {
		forecast = forecast.ConvertShares(cashflow.NewPrices(c.priceSource()))
		opts.Currency = true
	}
	printMarkdown(renderer.ForecastMarkdown(forecast, opts))
	return subcommands.ExitSuccess
}

// window resolves the date range. The start defaults to the series' natural
// start so the balance entry always lands inside the window.
func (c *forecastCmd) window(s *cashflow.Series) (cashflow.Range, error) {
	from := s.Start()
	if c.start != "" {
		var err error
		if from, err = cashflow.ParseDate(c.start); err != nil {
			return cashflow.Range{}, err
		}
	}
	if from.IsZero() {
		from = cashflow.Today()
	}
	to, err := cashflow.ParseDate(c.end)
	if err != nil {
		return cashflow.Range{}, err
	}
	return cashflow.NewRange(from, to), nil
}

// priceSource layers the fixed -price values over the live source, so a
// pinned ticker never triggers a fetch.
func (c *forecastCmd) priceSource() cashflow.PriceSource {
	if c.offline {
		return cashflow.StaticPrices(c.prices)
	}
	return layeredPrices{fixed: cashflow.StaticPrices(c.prices), live: cashflow.YahooSource{}}
}

type layeredPrices struct {
	fixed cashflow.StaticPrices
	live  cashflow.PriceSource
}

func (p layeredPrices) Price(symbol string) (float64, error) {
	if v, err := p.fixed.Price(symbol); err == nil {
		return v, nil
	}
	return p.live.Price(symbol)
}

// priceFlag accumulates repeated SYM=V pairs.
type priceFlag map[string]float64

func (p *priceFlag) String() string {
	pairs := make([]string, 0, len(*p))
	for sym, v := range *p {
		pairs = append(pairs, fmt.Sprintf("%s=%v", sym, v))
	}
	return strings.Join(pairs, " ")
}

func (p *priceFlag) Set(value string) error {
	sym, raw, ok := strings.Cut(value, "=")
	if !ok || sym == "" {
		return fmt.Errorf("want SYM=V, got %q", value)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if *p == nil {
		*p = make(map[string]float64)
	}
	(*p)[sym] = v
	return nil
}

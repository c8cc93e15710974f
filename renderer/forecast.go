package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/xiruizhao/cashflow-forecast"
)

// ForecastOptions holds configuration for rendering a forecast report.
type ForecastOptions struct {
	Currency bool // Format every cell as a currency value (after share conversion).
}

// ForecastMarkdown renders the ledger to a markdown string: one table row per
// date, one column per account, the activity summary last.
func ForecastMarkdown(f *cashflow.Forecast, opts ForecastOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cash-Flow Forecast")

	rows := f.Rows()
	if len(rows) == 0 {
		doc.PlainText("No activity in the requested period.")
		return doc.String()
	}
	doc.PlainTextf("%d days with activity, %s to %s.",
		len(rows), rows[0].On, rows[len(rows)-1].On)

	accounts := f.Accounts()
	alignments := make([]md.TableAlignment, 0, len(accounts)+2)
	header := make([]string, 0, len(accounts)+2)
	alignments = append(alignments, md.AlignLeft)
	header = append(header, "Date")
	for _, name := range accounts {
		alignments = append(alignments, md.AlignRight)
		header = append(header, name)
	}
	alignments = append(alignments, md.AlignLeft)
	header = append(header, "Activity")

	table := md.TableSet{Alignment: alignments, Header: header}
	for _, row := range rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.On.String())
		for _, name := range accounts {
			cells = append(cells, cell(name, row.Balances[name], opts))
		}
		cells = append(cells, row.Activity)
		table.Rows = append(table.Rows, cells)
	}
	doc.Table(table)

	return doc.String()
}

// cell formats one balance. Ticker columns hold share counts until the
// forecast has been converted, then currency like everything else.
func cell(name string, amount cashflow.Amount, opts ForecastOptions) string {
	if opts.Currency {
		return usd(amount)
	}
	if cashflow.IsTicker(name) {
		return amount.String()
	}
	return usd(amount)
}

package cashflow

import (
	"fmt"
	"sort"
	"strings"
)

// Row is one ledger line of a forecast: a date, the cumulative per-account
// balances as of that date, and a human-readable summary of what happened.
type Row struct {
	On       Date
	Activity string
	Balances map[string]Amount
}

// Forecast is the computed ledger: one row per date with activity, ascending,
// each holding the running balance of every account column.
type Forecast struct {
	accounts []string
	rows     []Row
}

// Accounts returns the column names, sorted.
func (f *Forecast) Accounts() []string { return f.accounts }

// Rows returns the ledger rows in ascending date order.
func (f *Forecast) Rows() []Row { return f.rows }

// Last returns the final ledger row, if any.
func (f *Forecast) Last() (Row, bool) {
	if len(f.rows) == 0 {
		return Row{}, false
	}
	return f.rows[len(f.rows)-1], true
}

// occurrence is one exploded (date, entry) pair. text is the accounts cell as
// written, shown in the activity summary; acc is its parsed form.
type occurrence struct {
	on   Date
	desc string
	text string
	acc  Accounts
}

type occurrenceKey struct {
	desc string
	on   Date
}

// Forecast expands every entry over the range and folds the occurrences into
// a cumulative ledger. It is a pure function of the series and the range:
// identical inputs give identical output, and the series is never mutated.
//
// Override entries erase every occurrence of their base entry landing on the
// same date and contribute their own deltas instead, under the base name.
// Removal is keyed by (base description, date), so it does not depend on the
// order entries appear in the series.
func (s *Series) Forecast(within Range) (*Forecast, error) {
	var regulars, overrides []occurrence
	for _, e := range s.Entries() {
		dates, err := Occurrences(e.RRule, e.DTStart, within)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Desc, err)
		}
		for _, on := range dates {
			o := occurrence{on: on, desc: e.Desc, text: e.Accounts, acc: e.Deltas}
			if e.IsOverride() {
				o.desc = e.BaseDesc()
				overrides = append(overrides, o)
			} else {
				regulars = append(regulars, o)
			}
		}
	}

	overridden := make(map[occurrenceKey]bool, len(overrides))
	for _, o := range overrides {
		overridden[occurrenceKey{o.desc, o.on}] = true
	}
	contributing := make([]occurrence, 0, len(regulars)+len(overrides))
	for _, o := range regulars {
		if !overridden[occurrenceKey{o.desc, o.on}] {
			contributing = append(contributing, o)
		}
	}
	contributing = append(contributing, overrides...)

	byDate := make(map[Date][]occurrence)
	var dates []Date
	for _, o := range contributing {
		if _, seen := byDate[o.on]; !seen {
			dates = append(dates, o.on)
		}
		byDate[o.on] = append(byDate[o.on], o)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	accounts := s.AccountNames()
	// The running totals stay exact; each row snapshots them rounded, so
	// rounding never compounds across dates.
	running := make(map[string]Amount, len(accounts))
	rows := make([]Row, 0, len(dates))
	for _, on := range dates {
		activities := make([]string, 0, len(byDate[on]))
		for _, o := range byDate[on] {
			activities = append(activities, o.desc+": "+o.text)
			for name, amt := range o.acc {
				running[name] = running[name].Add(amt)
			}
		}
		balances := make(map[string]Amount, len(accounts))
		for _, name := range accounts {
			balances[name] = running[name].Round()
		}
		rows = append(rows, Row{On: on, Activity: strings.Join(activities, "; "), Balances: balances})
	}
	return &Forecast{accounts: accounts, rows: rows}, nil
}

// ConvertShares returns a copy of the forecast with every ticker column's
// share count multiplied by its current price, shares becoming currency.
// Non-ticker columns are untouched; the receiver is not modified.
func (f *Forecast) ConvertShares(prices *Prices) *Forecast {
	out := &Forecast{accounts: f.accounts, rows: make([]Row, len(f.rows))}
	for i, row := range f.rows {
		balances := make(map[string]Amount, len(row.Balances))
		for name, amt := range row.Balances {
			if IsTicker(name) {
				amt = amt.Mul(A(prices.Price(TickerSymbol(name)))).Round()
			}
			balances[name] = amt
		}
		out.rows[i] = Row{On: row.On, Activity: row.Activity, Balances: balances}
	}
	return out
}

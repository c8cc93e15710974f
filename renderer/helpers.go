package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/xiruizhao/cashflow-forecast"
)

// usd formats an amount as a US dollar value, e.g. "-$1,234.50".
func usd(a cashflow.Amount) string {
	return money.New(a.MinorUnits(), money.USD).Display()
}

// DescribeRule returns a short human-readable description of a recurrence
// rule string, e.g. "every 2 weeks on Friday, until 2026-06-24". Rules
// outside the simple subset come back as "advanced"; malformed ones as
// "invalid".
func DescribeRule(rule string) string {
	sel, kind, err := cashflow.Classify(rule)
	if err != nil {
		return "invalid"
	}
	if sel == nil {
		return kind.String()
	}
	return describe(sel)
}

func describe(sel cashflow.Recurrence) string {
	switch r := sel.(type) {
	case cashflow.Never:
		return "once"
	case cashflow.Daily:
		return every(r.Interval, "day") + endText(r.End)
	case cashflow.Weekly:
		days := make([]string, len(r.Weekdays))
		for i, wd := range r.Weekdays {
			days[i] = wd.String()
		}
		return every(r.Interval, "week") + " on " + strings.Join(days, ", ") + endText(r.End)
	case cashflow.Monthly:
		return every(r.Interval, "month") + " on " + onText(r.On) + endText(r.End)
	case cashflow.Yearly:
		return every(r.Interval, "year") + " in " + r.Month.String() + " on " + onText(r.On) + endText(r.End)
	}
	return "advanced"
}

func every(interval int, unit string) string {
	if interval <= 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", interval, unit)
}

func onText(on cashflow.MonthlyOn) string {
	switch p := on.(type) {
	case cashflow.MonthDay:
		switch p {
		case -1:
			return "the last day"
		case -2:
			return "the second-to-last day"
		}
		return fmt.Sprintf("day %d", p)
	case cashflow.OrdinalWeekday:
		return "the " + ordinalText(p.Ord) + " " + p.Weekday.String()
	}
	return "?"
}

func ordinalText(ord int) string {
	switch ord {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case -1:
		return "last"
	case -2:
		return "second-to-last"
	}
	return fmt.Sprintf("%dth", ord)
}

func endText(end cashflow.End) string {
	switch e := end.(type) {
	case cashflow.Until:
		return ", until " + e.Date.String()
	case cashflow.Count:
		if e.N == 1 {
			return ", once"
		}
		return fmt.Sprintf(", %d times", e.N)
	}
	return ""
}

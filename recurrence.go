package cashflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NoRepeat is the sentinel rule for an event that occurs exactly once, on its
// start date. Encoding it as a terminating one-shot rule keeps "no repeat"
// inside ordinary occurrence expansion instead of being a special case.
const NoRepeat = "FREQ=DAILY;COUNT=1"

// untilFormat is the UNTIL timestamp emitted by the encoder. The compact
// T0000Z form is what existing stored rules use, so it must be preserved.
const untilFormat = "20060102T0000Z"

// End is the termination condition of a recurrence: [Forever], [Until] or
// [Count].
type End interface {
	isEnd()
	encode() (string, error)
}

// Forever never terminates the recurrence.
type Forever struct{}

func (Forever) isEnd()                  {}
func (Forever) encode() (string, error) { return "", nil }

// Until terminates the recurrence after a given date (inclusive).
type Until struct{ Date Date }

func (Until) isEnd() {}
func (u Until) encode() (string, error) {
	if u.Date.IsZero() {
		return "", fmt.Errorf("until date: %w", ErrMissingField)
	}
	return ";UNTIL=" + u.Date.Format(untilFormat), nil
}

// Count terminates the recurrence after N occurrences.
type Count struct{ N int }

func (Count) isEnd() {}
func (c Count) encode() (string, error) {
	if c.N < 1 {
		return "", fmt.Errorf("count %d must be positive: %w", c.N, ErrMissingField)
	}
	return ";COUNT=" + strconv.Itoa(c.N), nil
}

// MonthlyOn selects the day pattern of a monthly or yearly recurrence:
// either a fixed day of the month ([MonthDay]) or an ordinal weekday
// ([OrdinalWeekday], e.g. "second Friday").
type MonthlyOn interface {
	isMonthlyOn()
}

// MonthDay is a fixed day of the month. For monthly recurrences the valid
// range is 1..28 plus -1 (last day) and -2 (second-to-last day). For yearly
// recurrences it is 1..days of the selected month, negatives excluded.
type MonthDay int

func (MonthDay) isMonthlyOn() {}

// OrdinalWeekday is the Nth weekday of the month, Ord in {1,2,3,4,-1,-2}.
type OrdinalWeekday struct {
	Ord     int
	Weekday time.Weekday
}

func (OrdinalWeekday) isMonthlyOn() {}

func (o OrdinalWeekday) encode() (string, error) {
	switch o.Ord {
	case 1, 2, 3, 4, -1, -2:
	default:
		return "", fmt.Errorf("ordinal %d out of range: %w", o.Ord, ErrMissingField)
	}
	return strconv.Itoa(o.Ord) + weekdayCode(o.Weekday), nil
}

// Recurrence is a structured recurrence selection. Each variant carries
// exactly the fields its frequency requires, and encodes to the RRULE subset
// that [Classify] maps back, so any value built here round-trips losslessly.
type Recurrence interface {
	// Encode serializes the selection into an RFC 5545 RRULE string,
	// validating that every field the variant requires is present.
	Encode() (string, error)
}

// Never is the "no repeat" selection; it encodes to the [NoRepeat] sentinel.
type Never struct{}

func (Never) Encode() (string, error) { return NoRepeat, nil }

// Daily repeats every Interval days.
type Daily struct {
	Interval int
	End      End
}

func (r Daily) Encode() (string, error) {
	return encodeRule("DAILY", r.Interval, nil, r.End)
}

// Weekly repeats on a set of weekdays every Interval weeks.
type Weekly struct {
	Interval int
	Weekdays []time.Weekday
	End      End
}

func (r Weekly) Encode() (string, error) {
	if len(r.Weekdays) == 0 {
		return "", fmt.Errorf("weekly weekday set: %w", ErrMissingField)
	}
	codes := make([]string, len(r.Weekdays))
	for i, wd := range r.Weekdays {
		codes[i] = weekdayCode(wd)
	}
	return encodeRule("WEEKLY", r.Interval, []string{"BYDAY=" + strings.Join(codes, ",")}, r.End)
}

// Monthly repeats on a day pattern every Interval months.
type Monthly struct {
	Interval int
	On       MonthlyOn
	End      End
}

func (r Monthly) Encode() (string, error) {
	switch on := r.On.(type) {
	case MonthDay:
		if err := validateMonthDay(int(on)); err != nil {
			return "", err
		}
		return encodeRule("MONTHLY", r.Interval, []string{"BYMONTHDAY=" + strconv.Itoa(int(on))}, r.End)
	case OrdinalWeekday:
		byday, err := on.encode()
		if err != nil {
			return "", err
		}
		return encodeRule("MONTHLY", r.Interval, []string{"BYDAY=" + byday}, r.End)
	}
	return "", fmt.Errorf("monthly day pattern: %w", ErrMissingField)
}

// Yearly repeats on a month plus day pattern every Interval years.
type Yearly struct {
	Interval int
	Month    time.Month
	On       MonthlyOn
	End      End
}

func (r Yearly) Encode() (string, error) {
	if r.Month < time.January || r.Month > time.December {
		return "", fmt.Errorf("yearly month %d out of range: %w", r.Month, ErrMissingField)
	}
	month := strconv.Itoa(int(r.Month))
	switch on := r.On.(type) {
	case MonthDay:
		if on < 1 || int(on) > daysInMonth(r.Month) {
			return "", fmt.Errorf("day %d out of range for %s: %w", on, r.Month, ErrMissingField)
		}
		fields := []string{"BYMONTH=" + month, "BYMONTHDAY=" + strconv.Itoa(int(on))}
		return encodeRule("YEARLY", r.Interval, fields, r.End)
	case OrdinalWeekday:
		byday, err := on.encode()
		if err != nil {
			return "", err
		}
		fields := []string{"BYDAY=" + byday, "BYMONTH=" + month}
		return encodeRule("YEARLY", r.Interval, fields, r.End)
	}
	return "", fmt.Errorf("yearly day pattern: %w", ErrMissingField)
}

// encodeRule assembles FREQ, the optional INTERVAL (elided at 1, the RFC
// default), the frequency-specific BY* fields and the end condition.
func encodeRule(freq string, interval int, byFields []string, end End) (string, error) {
	var b strings.Builder
	b.WriteString("FREQ=")
	b.WriteString(freq)
	if interval > 1 {
		b.WriteString(";INTERVAL=")
		b.WriteString(strconv.Itoa(interval))
	}
	for _, f := range byFields {
		b.WriteByte(';')
		b.WriteString(f)
	}
	if end == nil {
		end = Forever{}
	}
	suffix, err := end.encode()
	if err != nil {
		return "", err
	}
	b.WriteString(suffix)
	return b.String(), nil
}

func validateMonthDay(d int) error {
	if (d >= 1 && d <= 28) || d == -1 || d == -2 {
		return nil
	}
	return fmt.Errorf("month day %d out of range: %w", d, ErrMissingField)
}

// daysInMonth returns the number of selectable days of a month for a yearly
// rule. February is fixed at 28 so that the rule fires every year.
func daysInMonth(m time.Month) int {
	switch m {
	case time.February:
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

var weekdayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

func weekdayCode(wd time.Weekday) string { return weekdayCodes[wd%7] }

// ParseWeekdayCode parses a two-letter RFC 5545 weekday code, e.g. "FR".
func ParseWeekdayCode(s string) (time.Weekday, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for i, c := range weekdayCodes {
		if c == code {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday code %q: %w", s, ErrMalformedRule)
}

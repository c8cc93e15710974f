package cashflow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// RuleKind is the shape a recurrence rule string classifies as. Every kind
// except [RuleAdvanced] maps to a [Recurrence] variant that re-encodes to an
// equivalent string.
type RuleKind int

const (
	// RuleAdvanced marks a rule outside the representable subset. It is
	// still a valid rule: it is kept opaque and expanded as-is.
	RuleAdvanced RuleKind = iota
	RuleDaily
	RuleWeeklyByWeekday
	RuleMonthlyByMonthDay
	RuleMonthlyByOrdinalWeekday
	RuleYearlyByMonthDay
	RuleYearlyByOrdinalWeekday
)

func (k RuleKind) String() string {
	switch k {
	case RuleDaily:
		return "daily"
	case RuleWeeklyByWeekday:
		return "weekly by weekday"
	case RuleMonthlyByMonthDay:
		return "monthly by day of month"
	case RuleMonthlyByOrdinalWeekday:
		return "monthly by ordinal weekday"
	case RuleYearlyByMonthDay:
		return "yearly by day of month"
	case RuleYearlyByOrdinalWeekday:
		return "yearly by ordinal weekday"
	}
	return "advanced"
}

// Sub-day frequencies and extensions are out of the supported subset even for
// advanced rules. Checked as substrings on the raw string so that rejection
// does not depend on the parser accepting them first.
var disallowedRuleParts = []string{
	"FREQ=SECONDLY",
	"FREQ=MINUTELY",
	"FREQ=HOURLY",
	"BYHOUR=",
	"BYMINUTE=",
	"BYSECOND=",
	"BYEASTER=",
}

// untilRE matches the compact UNTIL timestamp (HHMM, no seconds) that the
// encoder emits; the parser wants a full HHMMSS.
var untilRE = regexp.MustCompile(`UNTIL=(\d{8}T\d{4})Z`)

func normalizeUntil(s string) string {
	return untilRE.ReplaceAllString(s, "UNTIL=${1}00Z")
}

// ValidateRule reports whether a rule string parses and stays within the
// supported frequency subset. Advanced shapes pass; only malformed strings
// and sub-day rules fail.
func ValidateRule(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("empty rule: %w", ErrMalformedRule)
	}
	upper := strings.ToUpper(s)
	for _, part := range disallowedRuleParts {
		if strings.Contains(upper, part) {
			return fmt.Errorf("rule %q uses unsupported %s: %w", s, strings.TrimSuffix(part, "="), ErrMalformedRule)
		}
	}
	if _, err := rrule.StrToROption(normalizeUntil(s)); err != nil {
		return fmt.Errorf("rule %q: %v: %w", s, err, ErrMalformedRule)
	}
	return nil
}

// Classify decides whether a rule string is representable as a structured
// [Recurrence] and, when it is, rebuilds that selection. Unrepresentable but
// valid rules return a nil selection and [RuleAdvanced] with no error; only
// malformed rules return an error.
//
// The [NoRepeat] sentinel classifies as daily but yields a [Never] selection
// so that a stored one-shot round-trips back to the "no repeat" choice.
func Classify(s string) (Recurrence, RuleKind, error) {
	// A multi-line string carries RDATE/EXDATE lines or several rules.
	if strings.ContainsAny(s, "\n\r") {
		return nil, RuleAdvanced, nil
	}
	if err := ValidateRule(s); err != nil {
		return nil, RuleAdvanced, err
	}
	// ROption cannot distinguish an explicit WKST=MO from an absent WKST,
	// so the raw string decides.
	if strings.Contains(strings.ToUpper(s), "WKST=") {
		return nil, RuleAdvanced, nil
	}
	opt, err := rrule.StrToROption(normalizeUntil(s))
	if err != nil {
		return nil, RuleAdvanced, fmt.Errorf("rule %q: %v: %w", s, err, ErrMalformedRule)
	}
	if len(opt.Bysetpos) > 0 || len(opt.Byyearday) > 0 || len(opt.Byweekno) > 0 {
		return nil, RuleAdvanced, nil
	}

	end := End(Forever{})
	switch {
	case opt.Count > 0:
		end = Count{N: opt.Count}
	case !opt.Until.IsZero():
		end = Until{Date: NewDate(opt.Until.Date())}
	}
	interval := opt.Interval
	if interval < 1 {
		interval = 1
	}
	plain, ordinals := splitByweekday(opt.Byweekday)

	switch opt.Freq {
	case rrule.DAILY:
		if len(opt.Byweekday) > 0 || len(opt.Bymonthday) > 0 || len(opt.Bymonth) > 0 {
			return nil, RuleAdvanced, nil
		}
		if opt.Count == 1 && interval == 1 {
			return Never{}, RuleDaily, nil
		}
		return Daily{Interval: interval, End: end}, RuleDaily, nil

	case rrule.WEEKLY:
		if len(plain) == 0 || len(ordinals) > 0 || len(opt.Bymonthday) > 0 || len(opt.Bymonth) > 0 {
			return nil, RuleAdvanced, nil
		}
		return Weekly{Interval: interval, Weekdays: plain, End: end}, RuleWeeklyByWeekday, nil

	case rrule.MONTHLY:
		if len(opt.Bymonth) > 0 || len(plain) > 0 {
			return nil, RuleAdvanced, nil
		}
		if len(opt.Bymonthday) == 1 && len(ordinals) == 0 {
			day := opt.Bymonthday[0]
			if validateMonthDay(day) != nil {
				return nil, RuleAdvanced, nil
			}
			return Monthly{Interval: interval, On: MonthDay(day), End: end}, RuleMonthlyByMonthDay, nil
		}
		if len(ordinals) == 1 && len(opt.Bymonthday) == 0 && validOrdinal(ordinals[0].Ord) {
			return Monthly{Interval: interval, On: ordinals[0], End: end}, RuleMonthlyByOrdinalWeekday, nil
		}
		return nil, RuleAdvanced, nil

	case rrule.YEARLY:
		if len(opt.Bymonth) != 1 || len(plain) > 0 {
			return nil, RuleAdvanced, nil
		}
		month := time.Month(opt.Bymonth[0])
		if month < time.January || month > time.December {
			return nil, RuleAdvanced, nil
		}
		if len(opt.Bymonthday) == 1 && len(ordinals) == 0 {
			day := opt.Bymonthday[0]
			if day < 1 || day > daysInMonth(month) {
				return nil, RuleAdvanced, nil
			}
			return Yearly{Interval: interval, Month: month, On: MonthDay(day), End: end}, RuleYearlyByMonthDay, nil
		}
		if len(ordinals) == 1 && len(opt.Bymonthday) == 0 && validOrdinal(ordinals[0].Ord) {
			return Yearly{Interval: interval, Month: month, On: ordinals[0], End: end}, RuleYearlyByOrdinalWeekday, nil
		}
		return nil, RuleAdvanced, nil
	}
	return nil, RuleAdvanced, nil
}

func validOrdinal(ord int) bool {
	switch ord {
	case 1, 2, 3, 4, -1, -2:
		return true
	}
	return false
}

// splitByweekday partitions BYDAY values into plain weekdays and ordinal
// weekdays ("FR" vs "2FR").
func splitByweekday(days []rrule.Weekday) (plain []time.Weekday, ordinals []OrdinalWeekday) {
	for _, wd := range days {
		// rrule counts days from Monday, time.Weekday from Sunday.
		goWeekday := time.Weekday((wd.Day() + 1) % 7)
		if n := wd.N(); n != 0 {
			ordinals = append(ordinals, OrdinalWeekday{Ord: n, Weekday: goWeekday})
		} else {
			plain = append(plain, goWeekday)
		}
	}
	return plain, ordinals
}

// Occurrences expands a rule from a start date into the concrete dates that
// fall within the range, both bounds included, in ascending order.
func Occurrences(rule string, start Date, within Range) ([]Date, error) {
	if err := ValidateRule(rule); err != nil {
		return nil, err
	}
	opt, err := rrule.StrToROption(normalizeUntil(rule))
	if err != nil {
		return nil, fmt.Errorf("rule %q: %v: %w", rule, err, ErrMalformedRule)
	}
	opt.Dtstart = start.Time()
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %v: %w", rule, err, ErrMalformedRule)
	}
	times := r.Between(within.From.Time(), within.To.Time(), true)
	dates := make([]Date, len(times))
	for i, t := range times {
		dates[i] = NewDate(t.Date())
	}
	return dates, nil
}

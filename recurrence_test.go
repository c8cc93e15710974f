package cashflow

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeRecurrence(t *testing.T) {
	tests := []struct {
		name string
		sel  Recurrence
		want string
	}{
		{"never is the one-shot sentinel", Never{}, "FREQ=DAILY;COUNT=1"},
		{"daily", Daily{Interval: 1}, "FREQ=DAILY"},
		{"daily interval elided at 1", Daily{Interval: 1, End: Forever{}}, "FREQ=DAILY"},
		{"daily every 3 days", Daily{Interval: 3}, "FREQ=DAILY;INTERVAL=3"},
		{"weekly single day", Weekly{Interval: 2, Weekdays: []time.Weekday{time.Friday}},
			"FREQ=WEEKLY;INTERVAL=2;BYDAY=FR"},
		{"weekly several days", Weekly{Interval: 1, Weekdays: []time.Weekday{time.Monday, time.Friday}},
			"FREQ=WEEKLY;BYDAY=MO,FR"},
		{"monthly by day until", Monthly{Interval: 3, On: MonthDay(20), End: Until{MustParse("2025-06-24")}},
			"FREQ=MONTHLY;INTERVAL=3;BYMONTHDAY=20;UNTIL=20250624T0000Z"},
		{"monthly last day", Monthly{Interval: 1, On: MonthDay(-1)},
			"FREQ=MONTHLY;BYMONTHDAY=-1"},
		{"monthly second friday count", Monthly{Interval: 1, On: OrdinalWeekday{Ord: 2, Weekday: time.Friday}, End: Count{12}},
			"FREQ=MONTHLY;BYDAY=2FR;COUNT=12"},
		{"yearly by month day", Yearly{Interval: 1, Month: time.June, On: MonthDay(24)},
			"FREQ=YEARLY;BYMONTH=6;BYMONTHDAY=24"},
		{"yearly last monday of june", Yearly{Interval: 2, Month: time.June, On: OrdinalWeekday{Ord: -1, Weekday: time.Monday}},
			"FREQ=YEARLY;INTERVAL=2;BYDAY=-1MO;BYMONTH=6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Encode()
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeRecurrenceRejects(t *testing.T) {
	tests := []struct {
		name string
		sel  Recurrence
	}{
		{"weekly with no weekdays", Weekly{Interval: 1}},
		{"monthly with no pattern", Monthly{Interval: 1}},
		{"monthly day 29", Monthly{Interval: 1, On: MonthDay(29)}},
		{"monthly day -3", Monthly{Interval: 1, On: MonthDay(-3)}},
		{"monthly fifth friday", Monthly{Interval: 1, On: OrdinalWeekday{Ord: 5, Weekday: time.Friday}}},
		{"yearly with no month", Yearly{Interval: 1, On: MonthDay(1)}},
		{"yearly february 30", Yearly{Interval: 1, Month: time.February, On: MonthDay(30)}},
		{"yearly april 31", Yearly{Interval: 1, Month: time.April, On: MonthDay(31)}},
		{"yearly negative day", Yearly{Interval: 1, Month: time.June, On: MonthDay(-1)}},
		{"until with zero date", Daily{Interval: 1, End: Until{}}},
		{"count of zero", Daily{Interval: 1, End: Count{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Encode()
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("Encode() = (%q, %v), want ErrMissingField", got, err)
			}
		})
	}
}

func TestYearlyMonthLengths(t *testing.T) {
	// Day validity for a yearly rule follows the month's real length,
	// February pinned to 28 so the rule fires every year.
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 31},
		{time.February, 28},
		{time.April, 30},
		{time.December, 31},
	}
	for _, tt := range tests {
		if got := daysInMonth(tt.month); got != tt.want {
			t.Errorf("daysInMonth(%s) = %d, want %d", tt.month, got, tt.want)
		}
		// The last valid day encodes, one past it does not.
		if _, err := (Yearly{Interval: 1, Month: tt.month, On: MonthDay(tt.want)}).Encode(); err != nil {
			t.Errorf("yearly %s day %d should encode: %v", tt.month, tt.want, err)
		}
		if _, err := (Yearly{Interval: 1, Month: tt.month, On: MonthDay(tt.want + 1)}).Encode(); err == nil {
			t.Errorf("yearly %s day %d should not encode", tt.month, tt.want+1)
		}
	}
}

func TestParseWeekdayCode(t *testing.T) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		got, err := ParseWeekdayCode(weekdayCode(wd))
		if err != nil || got != wd {
			t.Errorf("ParseWeekdayCode(%q) = (%v, %v), want %v", weekdayCode(wd), got, err, wd)
		}
	}
	if _, err := ParseWeekdayCode("XX"); !errors.Is(err, ErrMalformedRule) {
		t.Errorf("ParseWeekdayCode(XX) error = %v, want ErrMalformedRule", err)
	}
}

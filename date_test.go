package cashflow

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"2025-06-24", NewDate(2025, time.June, 24)},
		{"2025-6-4", NewDate(2025, time.June, 4)},
		{" 2025-06-24 ", NewDate(2025, time.June, 24)},
		{"0d", Today()},
		{"+1d", Today().Add(1)},
		{"-10d", Today().Add(-10)},
		{"+2w", Today().Add(14)},
		{"+2y", Today().AddYears(2)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	for _, input := range []string{"", "june 24", "2025/06/24", "2d", "+2x"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) should fail", input)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	if got := NewDate(2025, time.January, 32); got != NewDate(2025, time.February, 1) {
		t.Errorf("overflowing day = %s, want 2025-02-01", got)
	}
	if got := NewDate(2025, time.December, 31).Add(1); got != NewDate(2026, time.January, 1) {
		t.Errorf("Add over year boundary = %s, want 2026-01-01", got)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(MustParse("2025-12-31"), MustParse("2025-01-01"))
	if r.From != MustParse("2025-01-01") || r.To != MustParse("2025-12-31") {
		t.Errorf("NewRange should swap reversed bounds, got %v", r)
	}

	if !r.Contains(r.From) || !r.Contains(r.To) {
		t.Error("Contains should include both bounds")
	}
	if r.Contains(MustParse("2024-12-31")) || r.Contains(MustParse("2026-01-01")) {
		t.Error("Contains should exclude dates outside the range")
	}
}

package cashflow

import (
	"errors"
	"reflect"
	"testing"
)

func mustEntry(t *testing.T, desc, accounts, dtstart, rule string) Entry {
	t.Helper()
	e, err := NewEntry(desc, accounts, MustParse(dtstart), rule)
	if err != nil {
		t.Fatalf("NewEntry(%q): %v", desc, err)
	}
	return e
}

func TestNewEntryRejects(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		accounts string
		rule     string
		want     error
	}{
		{"empty desc", "", "a+1", NoRepeat, ErrMissingField},
		{"bad accounts", "rent", "a6+-++7.$", NoRepeat, ErrMalformedAccounts},
		{"empty accounts", "rent", "", NoRepeat, ErrMalformedAccounts},
		{"bad rule", "rent", "a+1", "FREQ=SECONDLY", ErrMalformedRule},
		{"empty rule", "rent", "a+1", "", ErrMalformedRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.desc, tt.accounts, MustParse("2025-06-24"), tt.rule)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewEntry error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEntryKinds(t *testing.T) {
	balance := mustEntry(t, "Balance", "checking+100", "2025-06-24", NoRepeat)
	if !balance.IsBalance() {
		t.Error("balance desc should match case-insensitively")
	}

	override := mustEntry(t, "rent_override", "checking-280", "2025-12-01", NoRepeat)
	if !override.IsOverride() {
		t.Error("rent_override should be an override")
	}
	if got := override.BaseDesc(); got != "rent" {
		t.Errorf("BaseDesc() = %q, want %q", got, "rent")
	}

	regular := mustEntry(t, "rent", "checking-150", "2025-07-01", NoRepeat)
	if regular.IsBalance() || regular.IsOverride() {
		t.Error("rent should be a plain entry")
	}
	if got := regular.BaseDesc(); got != "rent" {
		t.Errorf("BaseDesc() = %q, want %q", got, "rent")
	}
}

func TestSeriesAppendDuplicateBalance(t *testing.T) {
	var s Series
	if err := s.Append(mustEntry(t, "balance", "a+1", "2025-06-24", NoRepeat)); err != nil {
		t.Fatalf("first balance: %v", err)
	}
	err := s.Append(
		mustEntry(t, "rent", "a-1", "2025-07-01", NoRepeat),
		mustEntry(t, "Balance", "a+2", "2025-06-25", NoRepeat),
	)
	if !errors.Is(err, ErrDuplicateBalance) {
		t.Fatalf("Append error = %v, want ErrDuplicateBalance", err)
	}
	// The failed batch must not be partially applied.
	if s.Len() != 1 {
		t.Errorf("Len() = %d after rejected batch, want 1", s.Len())
	}
}

func TestSeriesEntriesOrder(t *testing.T) {
	var s Series
	err := s.Append(
		mustEntry(t, "rent", "checking-150", "2025-07-01", NoRepeat),
		mustEntry(t, "balance", "checking+100", "2025-06-24", NoRepeat),
		mustEntry(t, "paycheck", "checking+70", "2025-06-27", NoRepeat),
	)
	if err != nil {
		t.Fatal(err)
	}
	var descs []string
	for _, e := range s.Entries() {
		descs = append(descs, e.Desc)
	}
	want := []string{"balance", "rent", "paycheck"}
	if !reflect.DeepEqual(descs, want) {
		t.Errorf("Entries order = %v, want %v", descs, want)
	}
}

func TestSeriesStart(t *testing.T) {
	var empty Series
	if !empty.Start().IsZero() {
		t.Error("empty series should have a zero start")
	}

	var s Series
	if err := s.Append(
		mustEntry(t, "rent", "a-1", "2025-07-01", NoRepeat),
		mustEntry(t, "paycheck", "a+1", "2025-06-27", NoRepeat),
	); err != nil {
		t.Fatal(err)
	}
	if got := s.Start(); got != MustParse("2025-06-27") {
		t.Errorf("Start() without balance = %s, want earliest dtstart", got)
	}

	if err := s.Append(mustEntry(t, "balance", "a+10", "2025-06-30", NoRepeat)); err != nil {
		t.Fatal(err)
	}
	if got := s.Start(); got != MustParse("2025-06-30") {
		t.Errorf("Start() with balance = %s, want the balance date", got)
	}
}

func TestSeriesRemove(t *testing.T) {
	var s Series
	if err := s.Append(
		mustEntry(t, "rent", "a-1", "2025-07-01", NoRepeat),
		mustEntry(t, "rent", "a-2", "2025-08-01", NoRepeat),
		mustEntry(t, "paycheck", "a+1", "2025-06-27", NoRepeat),
	); err != nil {
		t.Fatal(err)
	}
	if got := s.Remove("rent"); got != 2 {
		t.Errorf("Remove(rent) = %d, want 2", got)
	}
	if got := s.Remove("rent"); got != 0 {
		t.Errorf("second Remove(rent) = %d, want 0", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSeriesAccountNames(t *testing.T) {
	var s Series
	if err := s.Append(
		mustEntry(t, "paycheck", "checking+70 savings+140", "2025-06-27", NoRepeat),
		mustEntry(t, "vest", "$VTI+1.5", "2025-07-01", NoRepeat),
	); err != nil {
		t.Fatal(err)
	}
	want := []string{"$VTI", "checking", "savings"}
	if got := s.AccountNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("AccountNames() = %v, want %v", got, want)
	}
}

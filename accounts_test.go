package cashflow

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseAccounts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Accounts
	}{
		{"single credit", "checking+70", Accounts{"checking": A(70)}},
		{"single debit", "rent-1500", Accounts{"rent": A(-1500)}},
		{"several accounts", "checking+70 savings+140 retirement+30", Accounts{
			"checking":   A(70),
			"savings":    A(140),
			"retirement": A(30),
		}},
		{"fractional shares", "$VTI+1.5 brokerage-450", Accounts{
			"$VTI":      A(1.5),
			"brokerage": A(-450),
		}},
		{"rounds to 2 decimals", "a+1.239", Accounts{"a": A(1.24)}},
		{"zero amount", "checking+0", Accounts{"checking": A(0)}},
		{"extra whitespace", "  a+1   b-2  ", Accounts{"a": A(1), "b": A(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccounts(tt.input)
			if err != nil {
				t.Fatalf("ParseAccounts(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAccounts(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAccountsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"garbage", "a6+-++7.$"},
		{"no sign", "checking70"},
		{"no name", "+70"},
		{"bad amount", "a+7x"},
		{"two dots", "a+7.0.1"},
		{"duplicate name", "checking+5 checking+5"},
		{"reserved name", "desc+5"},
		{"reserved among valid", "checking+5 sum-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccounts(tt.input)
			if !errors.Is(err, ErrMalformedAccounts) {
				t.Errorf("ParseAccounts(%q) error = %v, want ErrMalformedAccounts", tt.input, err)
			}
			if got != nil {
				t.Errorf("ParseAccounts(%q) = %v, want nil on failure", tt.input, got)
			}
		})
	}
}

func TestAccountsString(t *testing.T) {
	tests := []struct {
		name string
		in   Accounts
		want string
	}{
		{"explicit plus", Accounts{"a": A(8)}, "a+8"},
		{"minus kept", Accounts{"a": A(-7.25)}, "a-7.25"},
		{"zero signed", Accounts{"a": A(0)}, "a+0"},
		{"sorted by name", Accounts{"savings": A(140), "checking": A(70), "$VTI": A(1.5)}, "$VTI+1.5 checking+70 savings+140"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	inputs := []Accounts{
		{"checking": A(70), "savings": A(-140)},
		{"$VTI": A(1.5), "cash": A(0)},
		{"a": A(1.23), "b": A(-4.56), "c": A(789)},
	}
	for _, m := range inputs {
		got, err := ParseAccounts(m.String())
		if err != nil {
			t.Fatalf("ParseAccounts(%q) error: %v", m.String(), err)
		}
		if !reflect.DeepEqual(got, m) {
			t.Errorf("round trip of %v through %q = %v", m, m.String(), got)
		}
	}
}

func TestIsTicker(t *testing.T) {
	if !IsTicker("$VTI") || IsTicker("checking") {
		t.Error("IsTicker should accept $-prefixed names only")
	}
	if got := TickerSymbol("$VTI"); got != "VTI" {
		t.Errorf("TickerSymbol($VTI) = %q", got)
	}
	if got := TickerSymbol("checking"); got != "" {
		t.Errorf("TickerSymbol(checking) = %q, want empty", got)
	}
}

func TestAmountMinorUnits(t *testing.T) {
	if got := A(302.77).MinorUnits(); got != 30277 {
		t.Errorf("MinorUnits(302.77) = %d, want 30277", got)
	}
	if got := A(-7.25).MinorUnits(); got != -725 {
		t.Errorf("MinorUnits(-7.25) = %d, want -725", got)
	}
}

package cashflow

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a signed account delta or balance. It stays exact through the
// cumulative fold; rounding to 2 decimals happens only when a value is
// snapshot for display.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from common numeric types.
func A[T int | int32 | int64 | float32 | float64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case int:
		return Amount{decimal.NewFromInt(int64(v))}
	case int32:
		return Amount{decimal.NewFromInt32(v)}
	case int64:
		return Amount{decimal.NewFromInt(v)}
	case float32:
		return Amount{decimal.NewFromFloat32(v)}
	case float64:
		return Amount{decimal.NewFromFloat(v)}
	case decimal.Decimal:
		return Amount{v}
	}
	panic("unreachable")
}

func (a Amount) Add(b Amount) Amount { return Amount{a.value.Add(b.value)} }
func (a Amount) Neg() Amount         { return Amount{a.value.Neg()} }
func (a Amount) Mul(b Amount) Amount { return Amount{a.value.Mul(b.value)} }
func (a Amount) IsZero() bool        { return a.value.IsZero() }
func (a Amount) IsNegative() bool    { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }

// Round returns the amount rounded to 2 decimal places.
func (a Amount) Round() Amount { return Amount{a.value.Round(2)} }

// MinorUnits returns the rounded amount in cents, for currency formatting.
func (a Amount) MinorUnits() int64 { return a.value.Round(2).Shift(2).IntPart() }

// String returns the plain decimal representation, e.g. "8" or "-7.25".
func (a Amount) String() string { return a.value.String() }

// SignedString is like String but with an explicit sign, e.g. "+8".
func (a Amount) SignedString() string {
	if a.value.IsNegative() {
		return a.value.String()
	}
	return "+" + a.value.String()
}

// Accounts maps an account name to its signed delta. A name starting with
// '$' denotes a tradable security tracked by ticker; its amount is then a
// share count, possibly fractional.
type Accounts map[string]Amount

// reservedNames are column names of the forecast output; an account may not
// shadow them.
var reservedNames = map[string]bool{
	"desc":     true,
	"accounts": true,
	"activity": true,
	"date":     true,
	"sum":      true,
}

// IsTicker reports whether an account name denotes a tradable security.
func IsTicker(name string) bool { return strings.HasPrefix(name, "$") }

// TickerSymbol returns the ticker symbol of a security account name,
// or "" if the name is not a ticker account.
func TickerSymbol(name string) string {
	if !IsTicker(name) {
		return ""
	}
	return name[1:]
}

// ParseAccounts decodes the accounts mini-language, e.g.
//
//	"checking+70 savings-140 $VTI+1.5"
//
// Tokens are whitespace-separated; each one is <name><sign><amount> where the
// sign is the first '+' (else the first '-') and the amount is an integer or
// a decimal number rounded to 2 places.
//
// Any malformed token, duplicate account name, or reserved name fails the
// whole decode: the result is never a partial map.
func ParseAccounts(s string) (Accounts, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty accounts string: %w", ErrMalformedAccounts)
	}
	ret := make(Accounts, len(fields))
	for _, token := range fields {
		var name, amt string
		if i := strings.IndexByte(token, '+'); i >= 0 {
			name, amt = token[:i], token[i+1:]
		} else if i := strings.IndexByte(token, '-'); i >= 0 {
			name, amt = token[:i], token[i:] // keep the minus on the amount
		} else {
			return nil, fmt.Errorf("token %q has no sign: %w", token, ErrMalformedAccounts)
		}
		if name == "" {
			return nil, fmt.Errorf("token %q has no account name: %w", token, ErrMalformedAccounts)
		}
		if _, dup := ret[name]; dup || reservedNames[name] {
			return nil, fmt.Errorf("account name %q is duplicated or reserved: %w", name, ErrMalformedAccounts)
		}
		value, err := parseAmount(amt)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", token, ErrMalformedAccounts)
		}
		ret[name] = value
	}
	return ret, nil
}

// parseAmount mirrors the grammar exactly: an integer when there is no
// decimal point, otherwise a float rounded to 2 decimals.
func parseAmount(s string) (Amount, error) {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Amount{}, err
		}
		return A(math.Round(f*100) / 100), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Amount{}, err
	}
	return A(n), nil
}

// Names returns the account names in sorted order.
func (a Accounts) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String encodes the map back into the mini-language, one token per account
// in sorted name order, each amount carrying an explicit sign ("+8", never
// "8"). It is the exact inverse of ParseAccounts for valid maps.
func (a Accounts) String() string {
	tokens := make([]string, 0, len(a))
	for _, name := range a.Names() {
		tokens = append(tokens, name+a[name].SignedString())
	}
	return strings.Join(tokens, " ")
}

package cashflow

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// BalanceDesc is the reserved description of the single entry that sets the
// forecast's starting balances and date. The balance entry is matched
// case-insensitively and uses the one-shot rule so it contributes exactly one
// occurrence, on its start date.
const BalanceDesc = "balance"

// overrideSuffix marks an entry that replaces another entry's effect on one
// specific date.
const overrideSuffix = "_override"

// Entry is one user-defined cash-flow series: a description, the per-account
// deltas of one occurrence, a start date and a recurrence rule.
//
// Accounts holds the accounts cell as the user wrote it. It is what activity
// summaries show and what the CSV codec writes back, so a stored file keeps
// its token order. Deltas is the parsed form the engine computes with.
type Entry struct {
	Desc     string
	Accounts string
	Deltas   Accounts
	DTStart  Date
	RRule    string
}

// NewEntry builds a validated entry from its wire fields.
func NewEntry(desc, accounts string, dtstart Date, rule string) (Entry, error) {
	m, err := ParseAccounts(accounts)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q: %w", desc, err)
	}
	e := Entry{Desc: desc, Accounts: accounts, Deltas: m, DTStart: dtstart, RRule: rule}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// IsBalance reports whether this is the starting-balance entry.
func (e Entry) IsBalance() bool { return strings.EqualFold(e.Desc, BalanceDesc) }

// IsOverride reports whether this entry overrides another entry's occurrence.
func (e Entry) IsOverride() bool { return strings.HasSuffix(e.Desc, overrideSuffix) }

// BaseDesc returns the description of the entry this one overrides, or the
// entry's own description when it is not an override.
func (e Entry) BaseDesc() string { return strings.TrimSuffix(e.Desc, overrideSuffix) }

// Validate checks the entry's invariants independently of any series.
func (e Entry) Validate() error {
	if e.Desc == "" {
		return fmt.Errorf("entry description: %w", ErrMissingField)
	}
	if len(e.Deltas) == 0 {
		return fmt.Errorf("entry %q: empty accounts: %w", e.Desc, ErrMalformedAccounts)
	}
	if e.DTStart.IsZero() {
		return fmt.Errorf("entry %q: start date: %w", e.Desc, ErrMissingField)
	}
	if err := ValidateRule(e.RRule); err != nil {
		return fmt.Errorf("entry %q: %w", e.Desc, err)
	}
	return nil
}

// Series is an ordered collection of entries, at most one of which is the
// balance entry. The zero value is an empty series ready to use.
type Series struct {
	entries []Entry
}

// Append validates all given entries against the series invariants and adds
// them. On error the series is left unchanged.
func (s *Series) Append(entries ...Entry) error {
	balances := 0
	if _, ok := s.Balance(); ok {
		balances++
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if e.IsBalance() {
			balances++
		}
	}
	if balances > 1 {
		return ErrDuplicateBalance
	}
	s.entries = append(s.entries, entries...)
	return nil
}

// Len returns the number of entries.
func (s *Series) Len() int { return len(s.entries) }

// Entries iterates over the entries in display order: the balance entry
// first, the rest in insertion order.
func (s *Series) Entries() iter.Seq2[int, Entry] {
	sorted := make([]Entry, len(s.entries))
	copy(sorted, s.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IsBalance() && !sorted[j].IsBalance()
	})
	return func(yield func(int, Entry) bool) {
		for i, e := range sorted {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Remove deletes every entry whose description matches exactly and reports
// how many were removed.
func (s *Series) Remove(desc string) int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if e.Desc == desc {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Balance returns the starting-balance entry, if any.
func (s *Series) Balance() (Entry, bool) {
	for _, e := range s.entries {
		if e.IsBalance() {
			return e, true
		}
	}
	return Entry{}, false
}

// Start returns the forecast's natural start: the balance entry's date when
// present, otherwise the earliest start date of any entry. Zero for an empty
// series.
func (s *Series) Start() Date {
	if b, ok := s.Balance(); ok {
		return b.DTStart
	}
	var min Date
	for _, e := range s.entries {
		if min.IsZero() || e.DTStart.Before(min) {
			min = e.DTStart
		}
	}
	return min
}

// AccountNames returns the sorted union of all account names across entries.
func (s *Series) AccountNames() []string {
	seen := make(map[string]bool)
	for _, e := range s.entries {
		for name := range e.Deltas {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package cashflow turns a compact description of recurring cash-flow
// events (paychecks, rent, stock vesting, ...) into a forward-looking,
// per-account running balance.
//
// The core functionalities include:
//   - Accounts Codec: a mini-language ("checking+70 savings-140 $VTI+1.5")
//     encoding signed per-account deltas, with tradable-security accounts
//     tracked in shares.
//   - Recurrence Codec: a constrained set of recurrence choices encoded
//     to and from RFC 5545 RRULE strings, with classification of arbitrary
//     rules as representable or advanced.
//   - Forecast Engine: a stateless engine that expands entries into dated
//     occurrences, applies override entries, and folds everything into a
//     cumulative, per-account ledger.
//   - Data Persistence: encoding and decoding the series to and from a
//     human-readable CSV format, including a compact shareable form.
//
// This package serves as the foundational logic for the `cfc` command-line
// tool; all functions are pure computations over their inputs, so callers
// simply re-invoke them when an input changes.
package cashflow

package cashflow

import "errors"

// Errors reported by the codecs and the series validation. The codecs fail
// fast and return no partial result: callers treat a wrapped sentinel as
// "invalid input, keep prior state". The forecast engine, by contrast,
// assumes validated input and reports decode failures loudly as they would
// indicate a bug upstream.
var (
	// ErrMalformedAccounts reports an accounts string that fails the
	// mini-language grammar or its uniqueness/reserved-name rules.
	ErrMalformedAccounts = errors.New("malformed accounts")

	// ErrMalformedRule reports a recurrence rule string that does not parse,
	// or uses a frequency or extension outside the supported subset. A rule
	// outside the simple structured subset is not malformed: it classifies
	// as advanced and is kept opaque.
	ErrMalformedRule = errors.New("malformed recurrence rule")

	// ErrDuplicateBalance reports a series holding more than one balance entry.
	ErrDuplicateBalance = errors.New("duplicate balance entry")

	// ErrMissingField reports a structured recurrence missing a field its
	// frequency or pattern requires.
	ErrMissingField = errors.New("missing required field")
)

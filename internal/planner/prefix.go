package planner

import "regexp"

// numericPrefix matches collection-index prefixes like "0042 - " or "1999.":
// exactly four digits, then at least one space, hyphen, underscore, or
// period. A fifth digit breaks the match, so "12345 Game" is left alone.
var numericPrefix = regexp.MustCompile(`^[0-9]{4}[ ._-]+`)

// StripNumericPrefix removes a leading collection index from a base name.
// It reports false when the pattern is absent or nothing would remain.
func StripNumericPrefix(base string) (string, bool) {
	loc := numericPrefix.FindStringIndex(base)
	if loc == nil {
		return base, false
	}
	rest := base[loc[1]:]
	if rest == "" {
		return base, false
	}
	return rest, true
}

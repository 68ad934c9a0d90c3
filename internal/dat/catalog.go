// Package dat builds the checksum catalog that drives renaming.
//
// Metadata arrives as XML DAT documents (Logiqx-style "game" collections,
// with a fallback to MAME-style "machine" collections) plus an optional
// user overrides file. Sources load in a fixed order and the first source
// to claim a checksum wins; later duplicates are counted and ignored.
package dat

import "strings"

// Entry pairs a checksum key with the canonical title it should rename to.
type Entry struct {
	Checksum string
	Title    string
	Source   string
}

// Catalog is the merged checksum lookup table. It is populated during Load
// and read-only afterwards.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Lookup returns the entry claimed by the given checksum key, if any.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	normalized, ok := NormalizeChecksum(key)
	if !ok {
		return Entry{}, false
	}
	entry, ok := c.entries[normalized]
	return entry, ok
}

// Len reports how many checksums the catalog holds.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// add claims a key for an entry. It reports false when an earlier source
// already claimed the key; the existing entry is never overwritten.
func (c *Catalog) add(entry Entry) bool {
	if _, taken := c.entries[entry.Checksum]; taken {
		return false
	}
	c.entries[entry.Checksum] = entry
	return true
}

// NormalizeChecksum converts a raw checksum value to canonical key form:
// uppercase, exactly eight hex digits, left-padded with zeros. Values that
// are empty, longer than eight digits, or not hex are rejected.
func NormalizeChecksum(value string) (string, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" || len(v) > 8 {
		return "", false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return "", false
		}
	}
	if len(v) < 8 {
		v = strings.Repeat("0", 8-len(v)) + v
	}
	return v, true
}

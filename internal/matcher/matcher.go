// Package matcher resolves raw file bytes against the checksum catalog.
package matcher

import (
	"romclerk/internal/checksum"
	"romclerk/internal/dat"
	"romclerk/internal/rom"
)

// Mode records which checksum produced a match.
type Mode int

const (
	// ModeNone means neither checksum is in the catalog.
	ModeNone Mode = iota
	// ModeHeadered means the full-file checksum matched, header and all.
	ModeHeadered
	// ModeDeheadered means the checksum matched after removing the header.
	ModeDeheadered
)

func (m Mode) String() string {
	switch m {
	case ModeHeadered:
		return "headered"
	case ModeDeheadered:
		return "deheadered"
	default:
		return "none"
	}
}

// Result carries the winning checksum and catalog entry for one file.
// For unmatched files Checksum still holds the full-file value so callers
// can log what was probed.
type Result struct {
	Mode     Mode
	Checksum string
	Entry    dat.Entry
}

// Matched reports whether either pass found a catalog entry.
func (r Result) Matched() bool {
	return r.Mode != ModeNone
}

// Match looks data up in the catalog. The full-file checksum always runs
// first and a hit ends the search. The de-headered checksum only runs when
// the full file missed, the dump header magic is present, and payload bytes
// remain after the header.
func Match(data []byte, catalog *dat.Catalog) Result {
	full := checksum.SumHex(data)
	if entry, ok := catalog.Lookup(full); ok {
		return Result{Mode: ModeHeadered, Checksum: full, Entry: entry}
	}

	if rom.HasHeader(data) && len(data) > rom.HeaderSize {
		stripped := checksum.SumHex(rom.Body(data))
		if entry, ok := catalog.Lookup(stripped); ok {
			return Result{Mode: ModeDeheadered, Checksum: stripped, Entry: entry}
		}
	}

	return Result{Mode: ModeNone, Checksum: full}
}

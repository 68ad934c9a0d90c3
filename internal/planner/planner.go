// Package planner turns per-file match results into a deterministic rename
// plan. Items are appended in scan order and never propose a no-op rename;
// collision handling happens later, at apply time.
package planner

import (
	"romclerk/internal/matcher"
	"romclerk/internal/rom"
	"romclerk/internal/textutil"
)

// Action identifies why a plan item renames a file.
type Action string

const (
	// ActionMatchHeadered is a rename driven by a full-file checksum match.
	ActionMatchHeadered Action = "match-headered"
	// ActionMatchDeheadered is a rename driven by a match after the dump
	// header was removed.
	ActionMatchDeheadered Action = "match-deheadered"
	// ActionPrefixStrip is a fallback rename that drops a numeric prefix
	// from an unmatched file.
	ActionPrefixStrip Action = "prefix-strip"
)

// Item is one planned rename. NewName is sanitized and always differs from
// OldName. Checksum and Source are empty for prefix-strip items.
type Item struct {
	Action   Action
	OldPath  string
	OldName  string
	NewName  string
	Checksum string
	Source   string
}

// Options tune planning behavior.
type Options struct {
	// StripPrefix enables the numeric-prefix fallback for unmatched files.
	StripPrefix bool
}

// Planner accumulates the plan for one run.
type Planner struct {
	opts      Options
	items     []Item
	unmatched []string
}

// New returns an empty planner.
func New(opts Options) *Planner {
	return &Planner{opts: opts}
}

// Add folds one file's match result into the plan.
func (p *Planner) Add(file rom.File, res matcher.Result) {
	if res.Matched() {
		p.addMatch(file, res)
		return
	}

	p.unmatched = append(p.unmatched, file.Name)
	if !p.opts.StripPrefix {
		return
	}
	p.addPrefixStrip(file)
}

func (p *Planner) addMatch(file rom.File, res matcher.Result) {
	base := textutil.SanitizeFileName(res.Entry.Title)
	if base == "" {
		return
	}
	newName := base + file.Ext
	if newName == file.Name {
		return
	}

	action := ActionMatchHeadered
	if res.Mode == matcher.ModeDeheadered {
		action = ActionMatchDeheadered
	}
	p.items = append(p.items, Item{
		Action:   action,
		OldPath:  file.Path,
		OldName:  file.Name,
		NewName:  newName,
		Checksum: res.Checksum,
		Source:   res.Entry.Source,
	})
}

func (p *Planner) addPrefixStrip(file rom.File) {
	base := file.Name[:len(file.Name)-len(file.Ext)]
	stripped, ok := StripNumericPrefix(base)
	if !ok {
		return
	}
	cleaned := textutil.SanitizeFileName(stripped)
	if cleaned == "" {
		return
	}
	newName := cleaned + file.Ext
	if newName == file.Name {
		return
	}
	p.items = append(p.items, Item{
		Action:  ActionPrefixStrip,
		OldPath: file.Path,
		OldName: file.Name,
		NewName: newName,
	})
}

// Items returns the planned renames in scan order.
func (p *Planner) Items() []Item {
	return p.items
}

// Unmatched returns the names no catalog entry claimed, in scan order.
// Files that received a prefix-strip item still count as unmatched.
func (p *Planner) Unmatched() []string {
	return p.unmatched
}

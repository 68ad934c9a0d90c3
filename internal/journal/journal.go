// Package journal records rename runs in SQLite so they can be listed
// and undone later.
package journal

import "time"

// Run describes one invocation of the rename pipeline against a directory.
type Run struct {
	ID         string
	RootDir    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Planned    int
	Applied    int
	Failed     int
	Undone     bool
}

// Rename is a single applied rename belonging to a run. Position preserves
// the order in which renames were applied so undo can replay them in reverse.
type Rename struct {
	RunID    string
	Position int
	Action   string
	OldName  string
	NewName  string
	Checksum string
	Source   string
}

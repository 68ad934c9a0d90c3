package preflight

import (
	"romclerk/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// ROM directory (always checked; renames need write access)
	results = append(results, CheckDirectoryAccess("ROM directory", cfg.Paths.RomDir))

	// DAT source (when configured)
	if cfg.Paths.DatDir != "" {
		results = append(results, CheckDATSource(cfg.Paths.DatDir))
	}

	// Overrides document (absent is a pass; unreadable is a failure)
	if cfg.Paths.OverridesPath != "" {
		results = append(results, CheckOverrides(cfg.Paths.OverridesPath))
	}

	// Log directory backs reports and the journal
	results = append(results, CheckLogDir(cfg.Paths.LogDir))

	if cfg.Journal.Enabled {
		results = append(results, CheckJournal(cfg))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

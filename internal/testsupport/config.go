package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"romclerk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The ROM and DAT directories are created so scans against them succeed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RomDir = filepath.Join(base, "roms")
	cfgVal.Paths.DatDir = filepath.Join(base, "dats")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ReportDir = filepath.Join(base, "reports")
	cfgVal.Paths.OverridesPath = ""
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")

	for _, dir := range []string{cfgVal.Paths.RomDir, cfgVal.Paths.DatDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	for _, opt := range opts {
		opt(&cfgVal)
	}

	return &cfgVal
}

// WithOverrides points the test config at an overrides document.
func WithOverrides(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.OverridesPath = path
	}
}

// WithJournalDisabled turns off run journaling on the test config.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}

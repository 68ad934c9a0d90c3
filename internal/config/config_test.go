package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romclerk/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("missing file should report exists=false")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if got := cfg.Scan.Extensions; len(got) != 1 || got[0] != ".nes" {
		t.Fatalf("default extensions = %v", got)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults = %+v", cfg.Logging)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("journal should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	content := `
[paths]
rom_dir = "` + dir + `/roms"
log_dir = "` + dir + `/logs"

[scan]
extensions = ["NES", ".unh", "nes"]
max_size_mib = 64

[rename]
strip_prefix = true

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || path != cfgPath {
		t.Fatalf("exists=%v path=%q", exists, path)
	}

	// Extensions normalize to lowercase dotted form with duplicates dropped.
	want := []string{".nes", ".unh"}
	if len(cfg.Scan.Extensions) != len(want) {
		t.Fatalf("extensions = %v", cfg.Scan.Extensions)
	}
	for i, ext := range cfg.Scan.Extensions {
		if ext != want[i] {
			t.Fatalf("extensions = %v, want %v", cfg.Scan.Extensions, want)
		}
	}

	if !cfg.Rename.StripPrefix {
		t.Fatal("strip_prefix not applied")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Scan.MaxSizeMiB != 64 {
		t.Fatalf("max_size_mib = %d", cfg.Scan.MaxSizeMiB)
	}
	if cfg.MaxSizeBytes() != 64<<20 {
		t.Fatalf("MaxSizeBytes = %d", cfg.MaxSizeBytes())
	}
}

func TestReportAndJournalDefaultToLogDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	content := `
[paths]
log_dir = "` + dir + `/logs"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	logDir := filepath.Join(dir, "logs")
	if cfg.Paths.ReportDir != logDir {
		t.Fatalf("report dir = %q, want %q", cfg.Paths.ReportDir, logDir)
	}
	if cfg.Journal.Path != filepath.Join(logDir, "journal.db") {
		t.Fatalf("journal path = %q", cfg.Journal.Path)
	}
}

func TestValidateRejectsEmptyExtensions(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	if err := os.WriteFile(cfgPath, []byte("[scan]\nextensions = []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "scan.extensions") {
		t.Fatalf("expected extensions validation error, got %v", err)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	if err := os.WriteFile(cfgPath, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	if err := os.WriteFile(cfgPath, []byte("[scan\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(cfgPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := config.ExpandPath("~/roms")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "roms") {
		t.Fatalf("ExpandPath = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[scan]") {
		t.Fatalf("sample config missing sections: %q", data)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "romclerk.toml")
	content := `
[paths]
log_dir = "` + dir + `/logs"
report_dir = "` + dir + `/reports"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, d := range []string{cfg.Paths.LogDir, cfg.Paths.ReportDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created: %v", d, err)
		}
	}
}

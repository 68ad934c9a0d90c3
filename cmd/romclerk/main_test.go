package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romclerk/internal/checksum"
	"romclerk/internal/config"
	"romclerk/internal/report"
	"romclerk/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RomDir = filepath.Join(base, "roms")
	cfgVal.Paths.DatDir = filepath.Join(base, "dats")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ReportDir = filepath.Join(base, "reports")
	cfgVal.Paths.OverridesPath = ""
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Logging.Level = "warn"

	for _, dir := range []string{cfgVal.Paths.RomDir, cfgVal.Paths.DatDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	cfg := &cfgVal
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
rom_dir = %q
dat_dir = %q
log_dir = %q
report_dir = %q
overrides_path = %q

[scan]
extensions = [".nes", ".sfc"]
max_size_mib = %d

[rename]
strip_prefix = %t

[journal]
enabled = %t
path = %q

[logging]
level = %q
format = "console"
`,
		cfg.Paths.RomDir, cfg.Paths.DatDir, cfg.Paths.LogDir, cfg.Paths.ReportDir,
		cfg.Paths.OverridesPath, cfg.Scan.MaxSizeMiB, cfg.Rename.StripPrefix,
		cfg.Journal.Enabled, cfg.Journal.Path, cfg.Logging.Level)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, "")
}

func runCLIWithInput(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want, label string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("%s output missing %q:\n%s", label, want, output)
	}
}

func TestCLIRenameHistoryUndo(t *testing.T) {
	env := setupCLITestEnv(t)

	content := []byte("legend-of-zork-payload")
	crc := checksum.SumHex(content)
	testsupport.WriteDAT(t, filepath.Join(env.cfg.Paths.DatDir, "nes.dat"),
		testsupport.CatalogRecord{Title: "Legend of Zork (USA)", CRC: crc})

	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "0123 zork.nes"), content)
	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "mystery.nes"), []byte("unknown-payload"))

	out, _, err := runCLI(t, []string{"rename", "--apply"}, env.configPath)
	if err != nil {
		t.Fatalf("rename --apply: %v", err)
	}
	requireContains(t, out, "Scanned 2 file(s): 1 matched, 1 unmatched.", "rename")
	requireContains(t, out, "Legend of Zork (USA).nes", "rename")
	requireContains(t, out, "Renamed 1 of 1 file(s).", "rename")
	requireContains(t, out, "Journaled as run ", "rename")

	renamed := filepath.Join(env.cfg.Paths.RomDir, "Legend of Zork (USA).nes")
	got, err := os.ReadFile(renamed)
	if err != nil {
		t.Fatalf("read renamed file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("renamed file content changed")
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "0123 zork.nes")); !os.IsNotExist(err) {
		t.Fatalf("expected old name to be gone, stat err = %v", err)
	}

	planData, err := os.ReadFile(filepath.Join(env.cfg.Paths.ReportDir, report.PlanFileName))
	if err != nil {
		t.Fatalf("read plan report: %v", err)
	}
	requireContains(t, string(planData), "match-headered", "plan report")
	requireContains(t, string(planData), "Legend of Zork (USA).nes", "plan report")

	unmatchedData, err := os.ReadFile(filepath.Join(env.cfg.Paths.ReportDir, report.UnmatchedFileName))
	if err != nil {
		t.Fatalf("read unmatched report: %v", err)
	}
	requireContains(t, string(unmatchedData), "mystery.nes", "unmatched report")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.RomDir, "history")

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	requireContains(t, out, `"applied": 1`, "history json")
	requireContains(t, out, `"undone": false`, "history json")

	out, _, err = runCLI(t, []string{"undo", "-y"}, env.configPath)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	requireContains(t, out, "Restored 1 of 1 file(s).", "undo")
	requireContains(t, out, "marked as undone", "undo")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "0123 zork.nes")); err != nil {
		t.Fatalf("expected original name restored: %v", err)
	}
	if _, err := os.Stat(renamed); !os.IsNotExist(err) {
		t.Fatalf("expected canonical name to be gone after undo, stat err = %v", err)
	}

	if _, _, err := runCLI(t, []string{"undo", "-y"}, env.configPath); err == nil {
		t.Fatal("expected second undo of the same run to fail")
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history after undo: %v", err)
	}
	requireContains(t, out, `"undone": true`, "history after undo")
}

func TestCLIRenameConfirmation(t *testing.T) {
	env := setupCLITestEnv(t)

	content := []byte("confirmation-payload")
	testsupport.WriteDAT(t, filepath.Join(env.cfg.Paths.DatDir, "nes.dat"),
		testsupport.CatalogRecord{Title: "Prompted Game", CRC: checksum.SumHex(content)})
	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "prompted.nes"), content)

	out, _, err := runCLIWithInput(t, []string{"rename"}, env.configPath, "n\n")
	if err != nil {
		t.Fatalf("rename declined: %v", err)
	}
	requireContains(t, out, "Apply 1 rename(s)?", "declined rename")
	requireContains(t, out, "Plan left unapplied.", "declined rename")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "prompted.nes")); err != nil {
		t.Fatalf("declined rename must not touch files: %v", err)
	}

	out, _, err = runCLIWithInput(t, []string{"rename"}, env.configPath, "y\n")
	if err != nil {
		t.Fatalf("rename accepted: %v", err)
	}
	requireContains(t, out, "Renamed 1 of 1 file(s).", "accepted rename")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "Prompted Game.nes")); err != nil {
		t.Fatalf("accepted rename must apply: %v", err)
	}
}

func TestCLIRenameStripPrefix(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "0042 Orphan Game.nes"), []byte("orphan-payload"))

	out, _, err := runCLI(t, []string{"rename", "--apply", "--strip-prefix"}, env.configPath)
	if err != nil {
		t.Fatalf("rename --strip-prefix: %v", err)
	}
	requireContains(t, out, "prefix-strip", "strip prefix")
	requireContains(t, out, "Renamed 1 of 1 file(s).", "strip prefix")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "Orphan Game.nes")); err != nil {
		t.Fatalf("expected prefix-stripped name: %v", err)
	}
}

func TestCLIRenameNothingToDo(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"rename"}, env.configPath)
	if err != nil {
		t.Fatalf("rename empty dir: %v", err)
	}
	requireContains(t, out, "No candidate files found", "empty dir")

	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "mystery.nes"), []byte("unknown-payload"))
	out, _, err = runCLI(t, []string{"rename"}, env.configPath)
	if err != nil {
		t.Fatalf("rename unmatched only: %v", err)
	}
	requireContains(t, out, "Nothing to rename.", "unmatched only")
}

func TestCLIRenameExtensionOverride(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteBytes(t, filepath.Join(env.cfg.Paths.RomDir, "game.nes"), []byte("payload"))

	out, _, err := runCLI(t, []string{"rename", "--ext", ".sfc"}, env.configPath)
	if err != nil {
		t.Fatalf("rename --ext: %v", err)
	}
	requireContains(t, out, "No candidate files found", "ext override")
}

func TestCLIRenameSkipsOversizedFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Scan.MaxSizeMiB = 1
	writeTestConfig(t, env.configPath, env.cfg)

	testsupport.WriteDAT(t, filepath.Join(env.cfg.Paths.DatDir, "nes.dat"),
		testsupport.CatalogRecord{Title: "Alpha", CRC: "00000001"})
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.RomDir, "huge.nes"), 2<<20)

	out, _, err := runCLI(t, []string{"rename", "--apply"}, env.configPath)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	requireContains(t, out, "Scanned 1 file(s): 0 matched, 0 unmatched.", "oversized")
	requireContains(t, out, "Nothing to rename.", "oversized")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.RomDir, "huge.nes")); err != nil {
		t.Fatalf("oversized file should be untouched: %v", err)
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romclerk/internal/testsupport"
)

func TestCLIVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "romclerk ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration", "config init")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config on disk: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init over an existing file to fail")
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIConfigValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath, "config validate")
	requireContains(t, out, "Configuration valid", "config validate")
}

func TestCLIConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "rom_dir", "config show")
	requireContains(t, out, env.cfg.Paths.RomDir, "config show")
}

func TestCLICheck(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDAT(t, filepath.Join(env.cfg.Paths.DatDir, "nes.dat"),
		testsupport.CatalogRecord{Title: "Anything", CRC: "00000001"})

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "All checks passed.", "check")

	out, _, err = runCLI(t, []string{"check", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if err == nil {
		t.Fatal("expected check against a missing directory to fail")
	}
	requireContains(t, out, "FAIL", "check failure")
}

func TestCLICatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDAT(t, filepath.Join(env.cfg.Paths.DatDir, "nes.dat"),
		testsupport.CatalogRecord{Title: "Alpha", CRC: "0000000A"},
		testsupport.CatalogRecord{Title: "Beta", CRC: "0000000B"},
		testsupport.CatalogRecord{Title: "Alpha Again", CRC: "0000000A"})

	out, _, err := runCLI(t, []string{"catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	requireContains(t, out, "nes.dat", "catalog")
	requireContains(t, out, "Catalog holds 2 unique checksum entries.", "catalog")

	out, _, err = runCLI(t, []string{"catalog", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog --json: %v", err)
	}
	requireContains(t, out, `"entries": 2`, "catalog json")
	requireContains(t, out, `"duplicates": 1`, "catalog json")
}

func TestCLIHistoryEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Journal is empty.", "history")
}

func TestCLIJournalDisabled(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Journal.Enabled = false
	writeTestConfig(t, env.configPath, env.cfg)

	if _, _, err := runCLI(t, []string{"history"}, env.configPath); err == nil {
		t.Fatal("expected history to fail with the journal disabled")
	}
	if _, _, err := runCLI(t, []string{"undo"}, env.configPath); err == nil {
		t.Fatal("expected undo to fail with the journal disabled")
	}
}

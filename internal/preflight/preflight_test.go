package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"romclerk/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDATSource_Empty(t *testing.T) {
	result := CheckDATSource(t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for directory without documents")
	}
}

func TestCheckDATSource_WithDocuments(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteDAT(t, filepath.Join(dir, "set.dat"), testsupport.CatalogRecord{Title: "Alpha", CRC: "00000001"})

	result := CheckDATSource(dir)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckOverrides_MissingIsOptional(t *testing.T) {
	result := CheckOverrides(filepath.Join(t.TempDir(), "overrides.jsonc"))
	if !result.Passed {
		t.Fatalf("expected missing overrides to pass, got: %s", result.Detail)
	}
}

func TestCheckOverrides_DirectoryFails(t *testing.T) {
	result := CheckOverrides(t.TempDir())
	if result.Passed {
		t.Fatal("expected failure when overrides path is a directory")
	}
}

func TestCheckLogDir_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "nested")
	result := CheckLogDir(dir)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected log dir to be created: %v", err)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_HealthyConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteDAT(t, filepath.Join(cfg.Paths.DatDir, "set.dat"), testsupport.CatalogRecord{Title: "Alpha", CRC: "00000001"})

	results := RunAll(cfg)
	// ROM dir, DAT source, log dir, journal
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %#v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if !AllPassed(results) {
		t.Fatal("expected AllPassed to be true")
	}
}

func TestRunAll_ChecksOverridesWhenConfigured(t *testing.T) {
	overrides := filepath.Join(t.TempDir(), "overrides.jsonc")
	testsupport.WriteBytes(t, overrides, []byte("{\n\t// local titles\n}\n"))
	cfg := testsupport.NewConfig(t, testsupport.WithOverrides(overrides))
	testsupport.WriteDAT(t, filepath.Join(cfg.Paths.DatDir, "set.dat"), testsupport.CatalogRecord{Title: "Alpha", CRC: "00000001"})

	results := RunAll(cfg)
	// ROM dir, DAT source, overrides, log dir, journal
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %#v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAll_ReportsMissingDocuments(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	results := RunAll(cfg)
	if AllPassed(results) {
		t.Fatal("expected empty DAT directory to fail preflight")
	}
	found := false
	for _, r := range results {
		if r.Name == "DAT directory" && !r.Passed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DAT directory failure in %#v", results)
	}
}

func TestRunAll_SkipsJournalWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalDisabled())
	testsupport.WriteDAT(t, filepath.Join(cfg.Paths.DatDir, "set.dat"), testsupport.CatalogRecord{Title: "Alpha", CRC: "00000001"})

	results := RunAll(cfg)
	for _, r := range results {
		if r.Name == "Journal database" {
			t.Fatal("journal check should be skipped when disabled")
		}
	}
}

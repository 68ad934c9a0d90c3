package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romclerk/internal/dat"
	"romclerk/internal/logging"
)

// CatalogRecord is one game record for a generated DAT document.
type CatalogRecord struct {
	Title string
	CRC   string
}

// WriteDAT renders records as a minimal Logiqx-style document at path.
func WriteDAT(t testing.TB, path string, records ...CatalogRecord) {
	t.Helper()

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<datafile>\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "\t<game name=%q>\n\t\t<rom name=\"ignored.bin\" crc=%q/>\n\t</game>\n", rec.Title, rec.CRC)
	}
	b.WriteString("</datafile>\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Catalog loads a catalog from generated records, in the given order.
func Catalog(t testing.TB, records ...CatalogRecord) *dat.Catalog {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.dat")
	WriteDAT(t, path, records...)

	catalog, _, err := dat.Load(dat.Sources{Documents: []string{path}}, logging.NewNop())
	if err != nil {
		t.Fatalf("load fixture catalog: %v", err)
	}
	return catalog
}

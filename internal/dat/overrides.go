package dat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"romclerk/internal/services"
)

// override is one user-pinned checksum mapping.
type override struct {
	CRC   string `json:"crc"`
	Title string `json:"title"`
}

// loadOverrides merges the user overrides file into the catalog. Overrides
// load before any DAT document, so under first-source-wins they always beat
// catalog content. The file is JSONC (comments and trailing commas allowed)
// and holds either a bare array or an object with an "overrides" field.
// A missing file simply means no overrides.
func loadOverrides(path string, catalog *Catalog) (Stats, bool, error) {
	stats := Stats{Source: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, false, nil
		}
		return stats, false, services.Wrap(services.ErrMetadata, "catalog", "read overrides",
			fmt.Sprintf("Could not read %s", stats.Source), err)
	}

	entries, err := parseOverrides(data)
	if err != nil {
		return stats, false, services.Wrap(services.ErrMetadata, "catalog", "parse overrides",
			fmt.Sprintf("Malformed overrides in %s", stats.Source), err)
	}

	for _, ovr := range entries {
		stats.Records++
		key, ok := NormalizeChecksum(ovr.CRC)
		title := strings.TrimSpace(ovr.Title)
		if !ok || title == "" {
			stats.Invalid++
			continue
		}
		if catalog.add(Entry{Checksum: key, Title: title, Source: stats.Source}) {
			stats.Added++
		} else {
			stats.Duplicates++
		}
	}
	return stats, true, nil
}

func parseOverrides(data []byte) ([]override, error) {
	stripped := jsonc.ToJSON(data)
	trimmed := bytes.TrimSpace(stripped)
	if len(trimmed) == 0 {
		return nil, nil
	}
	// Accept either a bare array or an object with an overrides field.
	if trimmed[0] == '{' {
		var wrapper struct {
			Overrides []override `json:"overrides"`
		}
		if err := json.Unmarshal(stripped, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Overrides, nil
	}
	var entries []override
	if err := json.Unmarshal(stripped, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

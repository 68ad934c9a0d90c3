package dat

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"romclerk/internal/logging"
	"romclerk/internal/services"
)

// ErrNoRecords marks a well-formed document that contains neither game nor
// machine records. Load logs it as a structural warning and keeps going.
var ErrNoRecords = errors.New("document has no game or machine records")

// Stats captures what one metadata source contributed to the catalog.
type Stats struct {
	Source     string
	Records    int // game or machine records seen
	Added      int // checksum entries claimed
	Duplicates int // checksums already claimed by an earlier source
	Invalid    int // records or rom entries skipped for missing fields
}

// Sources names the metadata inputs for a load, in load order: the optional
// overrides file first, then DAT documents sorted by name.
type Sources struct {
	OverridesPath string
	Documents     []string
}

// document mirrors the two DAT shapes we accept. A Logiqx datafile carries
// game records; a MAME listing carries machine records. The root element
// name itself does not matter.
type document struct {
	Games    []record `xml:"game"`
	Machines []record `xml:"machine"`
}

type record struct {
	Name string     `xml:"name,attr"`
	Roms []romEntry `xml:"rom"`
}

type romEntry struct {
	CRC string `xml:"crc,attr"`
}

// Load builds the catalog from the given sources. Structural problems
// (documents without records) are logged and skipped; a document that fails
// to read or parse aborts the load, since a partial catalog would rename
// files inconsistently.
func Load(src Sources, logger *slog.Logger) (*Catalog, []Stats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	catalog := NewCatalog()
	stats := make([]Stats, 0, len(src.Documents)+1)

	if src.OverridesPath != "" {
		st, loaded, err := loadOverrides(src.OverridesPath, catalog)
		if err != nil {
			return nil, nil, err
		}
		if loaded {
			stats = append(stats, st)
		}
	}

	for _, path := range src.Documents {
		st, err := loadDocument(path, catalog)
		if err != nil {
			if errors.Is(err, ErrNoRecords) {
				logger.Warn("skipping metadata document",
					logging.String("source", st.Source),
					logging.Error(err))
				stats = append(stats, st)
				continue
			}
			return nil, nil, err
		}
		stats = append(stats, st)
	}

	return catalog, stats, nil
}

// ListDocuments returns the DAT documents in dir (*.dat and *.xml), sorted
// by name so load order is stable.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list metadata documents in %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".dat", ".xml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func loadDocument(path string, catalog *Catalog) (Stats, error) {
	stats := Stats{Source: filepath.Base(path)}

	file, err := os.Open(path)
	if err != nil {
		return stats, services.Wrap(services.ErrMetadata, "catalog", "open document",
			fmt.Sprintf("Could not open %s", stats.Source), err)
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	decoder.CharsetReader = charsetReader

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return stats, services.Wrap(services.ErrMetadata, "catalog", "parse document",
			fmt.Sprintf("Malformed document %s", stats.Source), err)
	}

	records := doc.Games
	if len(records) == 0 {
		records = doc.Machines
	}
	if len(records) == 0 {
		return stats, fmt.Errorf("%s: %w", stats.Source, ErrNoRecords)
	}

	for _, rec := range records {
		stats.Records++
		title := strings.TrimSpace(rec.Name)
		if title == "" {
			stats.Invalid++
			continue
		}
		for _, rom := range rec.Roms {
			key, ok := NormalizeChecksum(rom.CRC)
			if !ok {
				stats.Invalid++
				continue
			}
			if catalog.add(Entry{Checksum: key, Title: title, Source: stats.Source}) {
				stats.Added++
			} else {
				stats.Duplicates++
			}
		}
	}

	return stats, nil
}

// charsetReader lets the decoder handle the Latin-1 encodings older DAT
// tools emit alongside UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported document charset %q", charset)
	}
}

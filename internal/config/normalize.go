package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RomDir) == "" {
		c.Paths.RomDir = defaultRomDir
	}
	if c.Paths.RomDir, err = expandPath(c.Paths.RomDir); err != nil {
		return fmt.Errorf("paths.rom_dir: %w", err)
	}
	// An empty dat_dir means "resolve metadata next to the scanned files";
	// it is left empty here and bound at command time.
	if strings.TrimSpace(c.Paths.DatDir) != "" {
		if c.Paths.DatDir, err = expandPath(c.Paths.DatDir); err != nil {
			return fmt.Errorf("paths.dat_dir: %w", err)
		}
	} else {
		c.Paths.DatDir = ""
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = c.Paths.LogDir
	} else if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	// Like dat_dir, an explicitly empty overrides_path disables overrides.
	if strings.TrimSpace(c.Paths.OverridesPath) != "" {
		if c.Paths.OverridesPath, err = expandPath(c.Paths.OverridesPath); err != nil {
			return fmt.Errorf("paths.overrides_path: %w", err)
		}
	} else {
		c.Paths.OverridesPath = ""
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Extensions = NormalizeExtensions(c.Scan.Extensions)
}

// NormalizeExtensions lowercases extensions, ensures the leading dot, and
// drops blanks and duplicates while keeping the original order. Command-line
// extension overrides go through the same rule as configured ones.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]struct{}, len(extensions))
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	return normalized
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.LogDir, "journal.db")
		return nil
	}
	expanded, err := expandPath(c.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	c.Journal.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

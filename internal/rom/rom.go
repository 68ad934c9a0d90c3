// Package rom locates candidate ROM files and inspects their raw bytes.
package rom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File describes a scanned candidate. Raw bytes are never held here; files
// are read one at a time during matching and released before the next one.
type File struct {
	Path string
	Name string
	Ext  string
	Size int64
}

// Scan lists regular files in dir whose extension matches exts
// (case-insensitive). Results follow lexical name order, so a given
// directory state always scans the same way. An empty result is not an
// error; the caller decides how to report it.
func Scan(dir string, exts []string) ([]File, error) {
	wanted := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan directory %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if _, ok := wanted[strings.ToLower(ext)]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		files = append(files, File{
			Path: filepath.Join(dir, name),
			Name: name,
			Ext:  ext,
			Size: info.Size(),
		})
	}
	return files, nil
}

// HexPreview renders the leading bytes of data as uppercase space-separated
// hex for verbose byte-dump output.
func HexPreview(data []byte, max int) string {
	if max <= 0 {
		return ""
	}
	if len(data) < max {
		max = len(data)
	}
	var b strings.Builder
	b.Grow(max * 3)
	for i := 0; i < max; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", data[i])
	}
	return b.String()
}

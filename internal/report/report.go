// Package report writes run artifacts: the plan export, the unmatched list,
// and the summary counts shown at the end of a run.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"romclerk/internal/fileutil"
	"romclerk/internal/planner"
)

const (
	// PlanFileName is the fixed name of the plan export in the report directory.
	PlanFileName = "plan.csv"
	// UnmatchedFileName is the fixed name of the unmatched list.
	UnmatchedFileName = "unmatched.txt"
)

// Summary aggregates the counts of one run for display and logging.
type Summary struct {
	Scanned   int
	Matched   int
	Unmatched int
	Planned   int
	Applied   int
	Failed    int
}

// Writer produces report files inside a fixed directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WritePlan exports the plan as CSV in plan order and returns the file path.
// The export is written atomically; an empty plan still produces the header.
func (w *Writer) WritePlan(items []planner.Item) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"action", "old_name", "new_name", "checksum", "source"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		record := []string{string(item.Action), item.OldName, item.NewName, item.Checksum, item.Source}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return w.writeFile(PlanFileName, buf.Bytes())
}

// WriteUnmatched writes one original filename per line and returns the file
// path. An empty list produces an empty file so stale results never linger.
func (w *Writer) WriteUnmatched(names []string) (string, error) {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	return w.writeFile(UnmatchedFileName, buf.Bytes())
}

func (w *Writer) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure report dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

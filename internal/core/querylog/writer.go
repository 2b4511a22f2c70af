package querylog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const headerLayout = "2006-01-02 15:04:05"

// Writer appends statements to the log. It never truncates the file.
type Writer struct {
	Path string
	Now  func() time.Time
}

func NewWriter(path string) *Writer {
	return &Writer{Path: path, Now: time.Now}
}

// Append writes a run header followed by one statement per line. Empty
// statements are dropped; if nothing remains the file is left untouched.
func (w *Writer) Append(statements []string) error {
	lines := make([]string, 0, len(statements))
	for _, s := range statements {
		if s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	if dir := filepath.Dir(w.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open query log '%s': %w", w.Path, err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "\n// === Added: %s ===\n", now().Format(headerLayout))
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write query log '%s': %w", w.Path, err)
	}
	return f.Close()
}

package crawler

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/teamscan/internal/logger"
)

// BatchWriter accumulates discovery results and appends them to a file
// in batches, so a long run that dies partway keeps most of its work.
// Each line is the site followed by its candidates, comma separated.
type BatchWriter struct {
	path string
	size int
	buf  []string
}

// NewBatchWriter creates a writer that flushes every size results.
func NewBatchWriter(path string, size int) *BatchWriter {
	if size <= 0 {
		size = 10
	}
	return &BatchWriter{path: path, size: size}
}

// Add records one site's candidates, flushing when the batch is full.
func (b *BatchWriter) Add(site string, candidates []string) error {
	parts := append([]string{site}, candidates...)
	b.buf = append(b.buf, strings.Join(parts, ","))
	if len(b.buf) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush appends buffered lines to the file.
func (b *BatchWriter) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	for _, line := range b.buf {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	logger.Debug("flushed discovery batch", "path", b.path, "lines", len(b.buf))
	b.buf = b.buf[:0]
	return nil
}

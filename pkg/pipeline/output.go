package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"

	"github.com/jmylchreest/teamscan/pkg/extract"
)

// CSVWriter appends person records to a CSV file. The header row is
// written once, only when the file is new or empty, so repeated runs
// against the same output file keep accumulating rows.
type CSVWriter struct {
	file *os.File
	w    *csv.Writer
	enc  *csvutil.Encoder
}

// NewCSVWriter opens (or creates) the output file in append mode.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat output file: %w", err)
	}

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false

	if info.Size() == 0 {
		if err := w.Write(extract.Columns); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	return &CSVWriter{file: f, w: w, enc: enc}, nil
}

// Write appends one record.
func (cw *CSVWriter) Write(p extract.Person) error {
	if err := cw.enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// Flush pushes buffered rows to disk.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// Close flushes and closes the file.
func (cw *CSVWriter) Close() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		cw.file.Close()
		return err
	}
	return cw.file.Close()
}

// Package urlfile reads lists of target URLs from text files.
package urlfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/teamscan/internal/logger"
)

// Read loads URLs from a file, one per line. Blank lines are skipped.
// Lines that do not start with "http" are treated as legacy
// comma-separated rows and split, so exports like
// "example.com,homepage,notes" still yield usable entries.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	// Some exports pack long rows onto a single line.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "http") {
			urls = append(urls, line)
			continue
		}

		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if field != "" {
				urls = append(urls, field)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	logger.Debug("loaded URL list", "path", path, "lines", lineNo, "urls", len(urls))
	return urls, nil
}

package extract

import (
	"encoding/csv"
	"strings"

	"github.com/jmylchreest/teamscan/internal/logger"
)

// ParseResponse parses a raw model completion as CSV rows matching the
// canonical schema. It is tolerant by design: lines that do not tokenize
// as CSV or have the wrong column count are skipped with a warning, a
// repeated header line is ignored, and arbitrary noise yields an empty
// slice rather than an error. Records with an empty full_name are kept;
// whether to treat them as low-confidence is the caller's decision.
func ParseResponse(raw string) []Person {
	var people []Person

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		fields, err := tokenizeLine(line)
		if err != nil {
			logger.Warn("skipping untokenizable line", "line", line, "error", err)
			continue
		}
		if len(fields) != len(Columns) {
			logger.Warn("skipping line with wrong column count",
				"want", len(Columns), "got", len(fields), "line", line)
			continue
		}
		if isHeader(fields) {
			continue
		}

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		people = append(people, Person{
			Website:    fields[0],
			FullName:   fields[1],
			FullBio:    fields[2],
			Age:        fields[3],
			Hometown:   fields[4],
			Education:  fields[5],
			Experience: fields[6],
			PhotoURL:   fields[7],
		})
	}

	return people
}

// tokenizeLine parses a single line as one CSV record, honoring quoted
// fields that contain commas.
func tokenizeLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

// isHeader reports whether the fields are the schema header echoed back
// by the model, compared field-wise, case-insensitively.
func isHeader(fields []string) bool {
	if len(fields) != len(Columns) {
		return false
	}
	for i, f := range fields {
		if !strings.EqualFold(strings.TrimSpace(f), Columns[i]) {
			return false
		}
	}
	return true
}

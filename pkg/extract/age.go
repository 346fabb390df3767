package extract

import (
	"regexp"
	"strconv"
	"time"
)

var yearPattern = regexp.MustCompile(`(19\d{2}|20\d{2})`)

// InferAge estimates an age from a graduation year mentioned in free
// text: professionals typically graduate around 26, so age is
// 26 + (current year - graduation year). Returns "" when no plausible
// year is found. Used to backfill an empty age field, never to override
// one the model supplied.
func InferAge(text string) string {
	return InferAgeAt(text, time.Now().Year())
}

// InferAgeAt is InferAge with an explicit current year.
func InferAgeAt(text string, currentYear int) string {
	if text == "" {
		return ""
	}
	for _, match := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		// Plausible graduation window.
		if year > 1950 && year <= currentYear {
			return strconv.Itoa(26 + (currentYear - year))
		}
	}
	return ""
}

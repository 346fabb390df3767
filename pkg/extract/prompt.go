package extract

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/teamscan/internal/logger"
)

// DefaultSubject is what the model is asked to look for when no
// extraction profile overrides it.
const DefaultSubject = "people (doctors/staff/providers)"

// Prompter builds the fixed-format extraction instruction for one URL.
type Prompter struct {
	// Subject names what to extract, e.g. "doctors".
	Subject string

	// ExtraRules are appended to the built-in rule list verbatim.
	ExtraRules []string

	// MaxChars bounds the embedded cleaned text (0 = unlimited). Text
	// beyond the budget is cut at a rune boundary with a visible notice.
	MaxChars int
}

// Build produces the instruction string for a cleaned document.
func (p Prompter) Build(url, text string) string {
	subject := p.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	var b strings.Builder
	b.WriteString("Extract ALL " + subject + " from the website text below.\n")
	b.WriteString("Return ONLY CSV rows, one row per person, no commentary and no markdown.\n")
	b.WriteString("Use exactly these columns in this order:\n")
	b.WriteString(strings.Join(Columns, ",") + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- The website column must be exactly: " + url + "\n")
	b.WriteString("- If a field is missing, leave it empty.\n")
	b.WriteString("- Double-quote any field that contains a comma.\n")
	for _, rule := range p.ExtraRules {
		b.WriteString("- " + rule + "\n")
	}
	b.WriteString("\nSOURCE URL: " + url + "\n")
	b.WriteString("TEXT TO EXTRACT FROM:\n")
	b.WriteString(truncate(text, p.MaxChars))
	return b.String()
}

// truncate limits text to maxChars runes. The cut is never silent: a
// notice is appended and a warning logged so a reviewer knows the model
// saw partial input.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	logger.Warn("prompt text truncated",
		"original_chars", len(runes),
		"max_chars", maxChars)
	return string(runes[:maxChars]) +
		"\n[input truncated: showing " + strconv.Itoa(maxChars) +
		" of " + strconv.Itoa(len(runes)) + " characters]"
}

// Package cleaner provides interfaces and implementations for cleaning HTML content.
// Cleaners transform raw page markup into plain text suitable for LLM extraction.
package cleaner

// Cleaner transforms HTML content into a cleaner format for extraction.
type Cleaner interface {
	// Clean transforms the input HTML into a cleaned format.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

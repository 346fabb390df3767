package pipeline

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// SafeName converts a URL into a filesystem-safe base name built from
// its host and path. "http://www.example.com/our-team/" becomes
// "www_example_com_our_team".
func SafeName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.Trim(unsafeChars.ReplaceAllString(rawURL, "_"), "_")
	}
	return strings.Trim(unsafeChars.ReplaceAllString(u.Host+u.Path, "_"), "_")
}

// ArtifactStore persists per-URL debug artifacts: the cleaned page
// text and the raw model response.
type ArtifactStore struct {
	Dir string
}

// NewArtifactStore creates the artifact directory if needed.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &ArtifactStore{Dir: dir}, nil
}

// SaveText writes the cleaned page text for a URL and returns the
// path. The source URL heads the file so an artifact read in isolation
// still identifies its page.
func (s *ArtifactStore) SaveText(pageURL, text string) (string, error) {
	path := filepath.Join(s.Dir, SafeName(pageURL)+".txt")
	content := pageURL + "\n\n" + text
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write text artifact: %w", err)
	}
	return path, nil
}

// SaveResponse writes the raw model response for a URL and returns the
// path. The file sits next to the text artifact with a "_response"
// suffix.
func (s *ArtifactStore) SaveResponse(pageURL, raw string) (string, error) {
	path := filepath.Join(s.Dir, SafeName(pageURL)+"_response.txt")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return "", fmt.Errorf("failed to write response artifact: %w", err)
	}
	return path, nil
}

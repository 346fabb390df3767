package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/teamscan/pkg/cleaner"
	"github.com/jmylchreest/teamscan/pkg/extract"
	"github.com/jmylchreest/teamscan/pkg/fetcher"
	"github.com/jmylchreest/teamscan/pkg/llm"
)

type stubProvider struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

var _ llm.Provider = (*stubProvider)(nil)

func (s *stubProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	s.calls++
	s.lastPrompt = req.Prompt
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.reply, Model: "stub-model"}, nil
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-model" }

func newRunner(t *testing.T, provider llm.Provider) (*Runner, string, string) {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "people.csv")
	artifacts := filepath.Join(dir, "artifacts")

	cfg := DefaultConfig()
	cfg.OutputPath = out
	cfg.ArtifactDir = artifacts

	return &Runner{
		Fetcher:  fetcher.NewStaticFetcher(fetcher.DefaultOptions()),
		Cleaner:  cleaner.NewText(),
		Provider: provider,
		Prompter: extract.Prompter{MaxChars: cfg.MaxInputChars},
		Config:   cfg,
	}, out, artifacts
}

func teamServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><script>var x=1;</script></head>
<body><h1>Our Team</h1><p>Dr. John Smith leads the practice.</p></body></html>`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunner_ExtractsPeople(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{
		reply: server.URL + ",John Smith,Lead dentist,45,Chicago IL,DDS NYU 2000,20 years,\n",
	}
	r, out, artifacts := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.People != 1 || summary.Failed != 0 || summary.Placeholders != 0 {
		t.Errorf("summary = %+v", summary)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines:\n%s", len(lines), data)
	}
	if lines[0] != strings.Join(extract.Columns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "John Smith") {
		t.Errorf("row = %q", lines[1])
	}

	if !strings.Contains(provider.lastPrompt, "Dr. John Smith leads the practice.") {
		t.Error("prompt missing cleaned page text")
	}
	if strings.Contains(provider.lastPrompt, "var x=1") {
		t.Error("prompt contains uncleaned script content")
	}

	base := SafeName(server.URL)
	textArtifact, err := os.ReadFile(filepath.Join(artifacts, base+".txt"))
	if err != nil {
		t.Errorf("text artifact missing: %v", err)
	} else if !strings.HasPrefix(string(textArtifact), server.URL+"\n") {
		t.Errorf("text artifact should start with the source URL:\n%s", textArtifact)
	}
	if _, err := os.Stat(filepath.Join(artifacts, base+"_response.txt")); err != nil {
		t.Errorf("response artifact missing: %v", err)
	}
}

func TestRunner_FetchFailureWritesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := &stubProvider{}
	r, out, _ := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("run itself should not fail: %v", err)
	}
	if summary.Failed != 1 || summary.Placeholders != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if provider.calls != 0 {
		t.Errorf("model should not be called for a failed fetch, got %d calls", provider.calls)
	}

	data, _ := os.ReadFile(out)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + placeholder, got:\n%s", data)
	}
	if !strings.HasPrefix(lines[1], server.URL+",") {
		t.Errorf("placeholder row = %q", lines[1])
	}
}

func TestRunner_SkipsHeaderAndMalformedLines(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{
		reply: strings.Join([]string{
			"website,full_name,full_bio,age,hometown,education,experience,photo_url",
			server.URL + ",Jane Doe,Bio,,,,,",
			"not,enough,columns",
			server.URL + ",Bob Lee,Other,,,,,",
		}, "\n"),
	}
	r, out, _ := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.People != 2 {
		t.Errorf("expected 2 people, got %+v", summary)
	}

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "Jane Doe") || !strings.Contains(string(data), "Bob Lee") {
		t.Errorf("output:\n%s", data)
	}
}

func TestRunner_DeduplicatesAcrossRun(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{
		reply: server.URL + ",John Smith,Bio,,,,,\n" +
			server.URL + ",john smith,Bio again,,,,,\n",
	}
	r, _, _ := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.People != 1 || summary.Duplicates != 1 {
		t.Errorf("expected duplicate to collapse, got %+v", summary)
	}
}

func TestRunner_EmptyReplyWritesPlaceholder(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{reply: "No people found on this page."}
	r, out, _ := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Placeholders != 1 || summary.People != 0 {
		t.Errorf("summary = %+v", summary)
	}

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), server.URL+",") {
		t.Errorf("placeholder row missing:\n%s", data)
	}
}

func TestRunner_AllEmptyRowCountsAsPlaceholder(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{
		reply: server.URL + ",,,,,,,\n" + server.URL + ",,,,,,,\n",
	}
	r, out, _ := newRunner(t, provider)

	summary, err := r.Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.People != 0 || summary.Placeholders != 1 {
		t.Errorf("summary = %+v", summary)
	}

	data, _ := os.ReadFile(out)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + one placeholder, got:\n%s", data)
	}
}

func TestRunner_BackfillsAgeFromEducation(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{
		reply: server.URL + ",Jane Doe,Bio,,Chicago,DDS class of 2000,,\n",
	}
	r, out, _ := newRunner(t, provider)

	if _, err := r.Run(context.Background(), []string{server.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(out)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	fields := strings.Split(lines[1], ",")
	if len(fields) < 4 || fields[3] == "" {
		t.Errorf("age should be inferred from graduation year, row = %q", lines[1])
	}
}

func TestRunner_UnwritableOutputIsFatal(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("<html><body>Our Team</body></html>"))
	}))
	defer server.Close()

	provider := &stubProvider{reply: "unused"}
	r, _, _ := newRunner(t, provider)
	// A directory cannot be opened for writing, so the run must abort
	// before any URL is touched.
	r.Config.OutputPath = t.TempDir()

	if _, err := r.Run(context.Background(), []string{server.URL, server.URL}); err == nil {
		t.Fatal("expected error for unwritable output file")
	}
	if requests != 0 {
		t.Errorf("no URLs should be processed, got %d requests", requests)
	}
	if provider.calls != 0 {
		t.Errorf("model should not be called, got %d calls", provider.calls)
	}
}

func TestRunner_SaveRawOnly(t *testing.T) {
	server := teamServer(t)
	provider := &stubProvider{reply: "should not be used"}
	r, out, artifacts := newRunner(t, provider)
	r.Config.SaveRawOnly = true

	if _, err := r.Run(context.Background(), []string{server.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("model called %d times in raw-only mode", provider.calls)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output CSV should not be created in raw-only mode")
	}
	if _, err := os.Stat(filepath.Join(artifacts, SafeName(server.URL)+".txt")); err != nil {
		t.Errorf("text artifact missing: %v", err)
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://www.example.com/our-team/", "www_example_com_our_team"},
		{"https://example.com", "example_com"},
		{"http://example.com/a/b?q=1", "example_com_a_b"},
		{"not a url", "not_a_url"},
	}
	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

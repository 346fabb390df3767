package extract

import (
	"strings"
	"testing"
)

func TestPrompter_Build(t *testing.T) {
	p := Prompter{}
	prompt := p.Build("http://example.com/team", "Meet Our Team Dr. John Smith")

	for _, want := range []string{
		"website,full_name,full_bio,age,hometown,education,experience,photo_url",
		"http://example.com/team",
		"Meet Our Team Dr. John Smith",
		"ONLY CSV",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestPrompter_SubjectAndRules(t *testing.T) {
	p := Prompter{
		Subject:    "dentists",
		ExtraRules: []string{"Ignore office staff."},
	}
	prompt := p.Build("http://a.com", "text")
	if !strings.Contains(prompt, "Extract ALL dentists") {
		t.Error("custom subject not used")
	}
	if !strings.Contains(prompt, "- Ignore office staff.") {
		t.Error("extra rule not appended")
	}
}

func TestPrompter_Truncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	p := Prompter{MaxChars: 40}
	prompt := p.Build("http://a.com", long)

	if strings.Contains(prompt, strings.Repeat("a", 41)) {
		t.Error("text was not truncated")
	}
	if !strings.Contains(prompt, "[input truncated: showing 40 of 100 characters]") {
		t.Error("truncation notice missing")
	}
}

func TestPrompter_NoTruncationUnderBudget(t *testing.T) {
	p := Prompter{MaxChars: 1000}
	prompt := p.Build("http://a.com", "short text")
	if strings.Contains(prompt, "truncated") {
		t.Error("unexpected truncation notice")
	}
}

// Package profile defines extraction profiles: who to look for on a
// page, extra prompt rules, and which link keywords identify team
// pages during discovery.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Profile tunes extraction and discovery for a vertical, e.g. dental
// practices vs. law firms.
type Profile struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Subject    string   `json:"subject" yaml:"subject" validate:"required"`
	ExtraRules []string `json:"extra_rules,omitempty" yaml:"extra_rules,omitempty"`

	// DiscoverKeywords order the sub-link candidates: links matching
	// an earlier keyword sort before links matching a later one.
	DiscoverKeywords []string `json:"discover_keywords,omitempty" yaml:"discover_keywords,omitempty" validate:"omitempty,dive,required"`
}

// Default returns the built-in profile for medical/dental team pages.
func Default() Profile {
	return Profile{
		Name:    "default",
		Subject: "people (doctors/staff/providers)",
		DiscoverKeywords: []string{
			"team", "doctor", "dentist", "staff", "provider",
			"physician", "about", "meet", "our-people", "bio",
		},
	}
}

// FromFile loads a profile from a YAML file.
func FromFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Profile{}, fmt.Errorf("unsupported profile file format: %s", ext)
	}

	return FromYAML(data)
}

// FromYAML creates a profile from YAML data.
func FromYAML(data []byte) (Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse YAML profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks required fields.
func (p Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

package extract

import "testing"

func TestInferAgeAt(t *testing.T) {
	tests := []struct {
		name string
		text string
		year int
		want string
	}{
		{"graduation year", "Graduated from NYU in 2000", 2025, "51"},
		{"recent graduate", "DDS, class of 2020", 2025, "31"},
		{"no year", "An experienced dentist", 2025, ""},
		{"empty text", "", 2025, ""},
		{"implausibly old year", "Founded in 1900", 2025, ""},
		{"future year ignored", "Opening in 2099", 2025, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferAgeAt(tt.text, tt.year); got != tt.want {
				t.Errorf("InferAgeAt(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

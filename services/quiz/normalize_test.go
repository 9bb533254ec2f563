package quiz

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses space runs",
			input:    "a    b  c",
			expected: "a b c",
		},
		{
			name:     "collapses newline runs",
			input:    "line one\n\n\n\nline two\n\nline three",
			expected: "line one\nline two\nline three",
		},
		{
			name:     "replaces tabs with single spaces",
			input:    "a\tb\t\tc",
			expected: "a b c",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "   padded text   \n",
			expected: "padded text",
		},
		{
			name:     "empty input yields empty output",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only input yields empty output",
			input:    " \t\n \n\t ",
			expected: "",
		},
		{
			name:     "typical pdf extraction noise",
			input:    "Title\n\n\n  Body   text\twith\ttabs  \n\nEnd  ",
			expected: "Title\nBody text with tabs\nEnd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"a    b\t\tc",
		"line\n\n\nline  two \t",
		"  \n\t ",
		"already normal",
		"mixed \n \n runs  here",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not a fixed point for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeOutputHasNoRuns(t *testing.T) {
	inputs := []string{
		"a    b\t\tc\n\n\nd",
		"\t\t\t",
		"x  \n\n  y",
	}

	for _, input := range inputs {
		result := Normalize(input)
		if strings.Contains(result, "  ") {
			t.Errorf("Normalize(%q) = %q still contains a double space", input, result)
		}
		if strings.Contains(result, "\n\n") {
			t.Errorf("Normalize(%q) = %q still contains a double newline", input, result)
		}
		if strings.Contains(result, "\t") {
			t.Errorf("Normalize(%q) = %q still contains a tab", input, result)
		}
	}
}

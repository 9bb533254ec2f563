package quiz

import "strings"

// Normalize collapses the whitespace noise that PDF extraction and OCR leave
// behind: tabs become single spaces, runs of spaces and runs of newlines
// collapse to one, and the edges are trimmed. The result is a fixed point,
// normalizing twice changes nothing.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}

	return strings.TrimSpace(text)
}

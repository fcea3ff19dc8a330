package utils

import (
	"strings"
	"unicode"
)

// Sanitize removes every rune that is not a letter, digit, or whitespace,
// then trims leading and trailing whitespace.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ChunkWords splits text on whitespace and regroups the words into chunks
// of budget words each, joined with single spaces. The final chunk may be
// shorter. Empty or all-whitespace text yields no chunks.
func ChunkWords(text string, budget int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if budget <= 0 {
		return []string{strings.Join(words, " ")}
	}

	chunks := make([]string, 0, (len(words)+budget-1)/budget)
	for i := 0; i < len(words); i += budget {
		end := i + budget
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

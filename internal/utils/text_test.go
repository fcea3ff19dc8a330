package utils

import (
	"fmt"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Jarvis", "Jarvis"},
		{"punctuation stripped", "J.a.r!v?i#s", "Jarvis"},
		{"internal whitespace kept", "My  AI friend", "My  AI friend"},
		{"surrounding whitespace trimmed", "  hello world \t\n", "hello world"},
		{"url collapses to words", "https://example.com/pic.png", "httpsexamplecompicpng"},
		{"digits kept", "agent 007", "agent 007"},
		{"only symbols", "!@#$%^&*()", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeOutputAlphabet(t *testing.T) {
	got := Sanitize(" a-b_c 1,2.3 é! ")
	for _, r := range got {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == 'é':
		default:
			t.Fatalf("unexpected rune %q in sanitized output %q", r, got)
		}
	}
	if strings.TrimSpace(got) != got {
		t.Errorf("sanitized output %q is not trimmed", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"Jarvis!", "  spaced   out  ", "mix3d #up$ t3xt", ""}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestChunkWordsCounts(t *testing.T) {
	tests := []struct {
		words  int
		budget int
	}{
		{0, 500},
		{1, 500},
		{499, 500},
		{500, 500},
		{501, 500},
		{1250, 500},
		{7, 3},
		{9, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_words_budget_%d", tt.words, tt.budget), func(t *testing.T) {
			words := make([]string, tt.words)
			for i := range words {
				words[i] = fmt.Sprintf("w%d", i)
			}
			chunks := ChunkWords(strings.Join(words, " "), tt.budget)

			wantChunks := (tt.words + tt.budget - 1) / tt.budget
			if len(chunks) != wantChunks {
				t.Fatalf("got %d chunks, want %d", len(chunks), wantChunks)
			}

			var rejoined []string
			for i, c := range chunks {
				got := strings.Fields(c)
				if len(got) == 0 {
					t.Fatalf("chunk %d is empty", i)
				}
				if i < len(chunks)-1 && len(got) != tt.budget {
					t.Errorf("chunk %d has %d words, want exactly %d", i, len(got), tt.budget)
				}
				rejoined = append(rejoined, got...)
			}

			if strings.Join(rejoined, " ") != strings.Join(words, " ") {
				t.Error("concatenated chunks do not reproduce the original word sequence")
			}
		})
	}
}

func TestChunkWordsEmptyInput(t *testing.T) {
	if got := ChunkWords("", 500); got != nil {
		t.Errorf("ChunkWords(\"\") = %v, want nil", got)
	}
	if got := ChunkWords("   \t\n ", 500); got != nil {
		t.Errorf("ChunkWords(whitespace) = %v, want nil", got)
	}
}

func TestChunkWordsNormalizesWhitespace(t *testing.T) {
	chunks := ChunkWords("a  b\tc\nd", 2)
	want := []string{"a b", "c d"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

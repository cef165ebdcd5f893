package rag

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected []string
	}{
		{
			name:     "empty input",
			text:     "",
			maxLen:   512,
			expected: nil,
		},
		{
			name:     "zero max length",
			text:     "abc",
			maxLen:   0,
			expected: nil,
		},
		{
			name:     "shorter than window",
			text:     "short text",
			maxLen:   512,
			expected: []string{"short text"},
		},
		{
			name:     "exact window",
			text:     "abcd",
			maxLen:   4,
			expected: []string{"abcd"},
		},
		{
			name:     "split mid word",
			text:     "hello world",
			maxLen:   4,
			expected: []string{"hell", "o wo", "rld"},
		},
		{
			name:     "multibyte runes are not split",
			text:     "ññññññ",
			maxLen:   4,
			expected: []string{"ññññ", "ññ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.text, tt.maxLen)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d chunks, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestChunkText_Reconstruction(t *testing.T) {
	texts := []string{
		"a",
		strings.Repeat("x", 1000),
		"palabras con acentos y señales únicas repetidas varias veces para cubrir varios bloques",
	}

	for _, text := range texts {
		for _, maxLen := range []int{1, 3, 100, 512} {
			chunks := ChunkText(text, maxLen)

			if joined := strings.Join(chunks, ""); joined != text {
				t.Fatalf("maxLen=%d: concatenation does not reconstruct input", maxLen)
			}

			runeCount := len([]rune(text))
			wantChunks := (runeCount + maxLen - 1) / maxLen
			if len(chunks) != wantChunks {
				t.Errorf("maxLen=%d: expected %d chunks, got %d", maxLen, wantChunks, len(chunks))
			}

			for i, c := range chunks {
				if n := len([]rune(c)); n > maxLen {
					t.Errorf("maxLen=%d: chunk %d has %d runes", maxLen, i, n)
				}
			}
		}
	}
}

// A 1000-character document with a 512 window must produce exactly two
// fragments of 512 and 488 characters.
func TestChunkText_DocumentSizes(t *testing.T) {
	chunks := ChunkText(strings.Repeat("a", 1000), 512)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 512 {
		t.Errorf("expected first chunk of 512, got %d", len(chunks[0]))
	}
	if len(chunks[1]) != 488 {
		t.Errorf("expected second chunk of 488, got %d", len(chunks[1]))
	}
}

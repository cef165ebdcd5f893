// Package rag holds the pure retrieval primitives: fragment chunking and
// keyword reranking. Neither does any I/O.
package rag

// ChunkText splits text into fixed-size character windows of at most
// maxLen runes. Chunks are non-overlapping and concatenate back to the
// original text exactly. Boundaries may split words; chunking is a size
// bound, not a semantic segmentation.
func ChunkText(text string, maxLen int) []string {
	if maxLen <= 0 || text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxLen-1)/maxLen)

	for i := 0; i < len(runes); i += maxLen {
		end := i + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

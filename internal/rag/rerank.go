package rag

import (
	"sort"
	"strings"
)

// Rerank reorders fragments by how many distinct query words each one
// contains, most hits first. Matching is case-insensitive substring
// containment per query word; repeating a word inside a fragment does not
// raise its score. The sort is stable, so ties keep their original
// relative order and the result is deterministic.
//
// This is a second, deliberately cheap relevance signal applied after
// vector similarity has already narrowed the candidates. It is kept
// separate from the similarity score on purpose.
func Rerank(query string, fragments []string) []string {
	words := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(query)) {
		words[w] = struct{}{}
	}

	ranked := make([]string, len(fragments))
	copy(ranked, fragments)

	scores := make(map[int]int, len(ranked))
	for i, frag := range ranked {
		scores[i] = keywordScore(words, frag)
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]string, len(ranked))
	for i, idx := range order {
		out[i] = ranked[idx]
	}
	return out
}

func keywordScore(words map[string]struct{}, fragment string) int {
	lower := strings.ToLower(fragment)
	score := 0
	for w := range words {
		if strings.Contains(lower, w) {
			score++
		}
	}
	return score
}

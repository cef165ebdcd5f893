package rag

import (
	"reflect"
	"sort"
	"testing"
)

func TestRerank(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		fragments []string
		expected  []string
	}{
		{
			name:      "empty fragments",
			query:     "anything",
			fragments: []string{},
			expected:  []string{},
		},
		{
			name:      "keyword hit ranks first",
			query:     "what is the deadline",
			fragments: []string{"irrelevant text", "the deadline is May 5", "no date mentioned"},
			expected:  []string{"the deadline is May 5", "irrelevant text", "no date mentioned"},
		},
		{
			name:      "ties keep original order",
			query:     "what is the deadline",
			fragments: []string{"the deadline is May 5", "irrelevant text", "no date mentioned"},
			expected:  []string{"the deadline is May 5", "irrelevant text", "no date mentioned"},
		},
		{
			name:      "matching is case insensitive",
			query:     "EXAM Schedule",
			fragments: []string{"nothing here", "the exam schedule is posted"},
			expected:  []string{"the exam schedule is posted", "nothing here"},
		},
		{
			name:      "repeated word counted once",
			query:     "deadline",
			fragments: []string{"deadline deadline deadline", "the deadline and the room"},
			expected:  []string{"deadline deadline deadline", "the deadline and the room"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rerank(tt.query, tt.fragments)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRerank_IsPermutation(t *testing.T) {
	fragments := []string{"alpha beta", "gamma", "beta", "delta epsilon", "gamma beta"}
	got := Rerank("beta gamma", fragments)

	if len(got) != len(fragments) {
		t.Fatalf("expected %d fragments, got %d", len(fragments), len(got))
	}

	wantSorted := append([]string(nil), fragments...)
	gotSorted := append([]string(nil), got...)
	sort.Strings(wantSorted)
	sort.Strings(gotSorted)
	if !reflect.DeepEqual(wantSorted, gotSorted) {
		t.Errorf("result is not a permutation of the input: %q", got)
	}
}

func TestRerank_Idempotent(t *testing.T) {
	fragments := []string{"no match here", "the deadline is May 5", "deadline tomorrow", "other"}
	query := "when is the deadline"

	once := Rerank(query, fragments)
	twice := Rerank(query, once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("reranking its own output changed the order: %q vs %q", once, twice)
	}
}

func TestRerank_DoesNotMutateInput(t *testing.T) {
	fragments := []string{"z no hits", "the deadline"}
	orig := append([]string(nil), fragments...)

	Rerank("deadline", fragments)

	if !reflect.DeepEqual(fragments, orig) {
		t.Errorf("input slice was mutated: %q", fragments)
	}
}

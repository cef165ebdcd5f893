package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/campusrag/internal/core"
)

type fakeEmbedder struct {
	dims  int
	calls []string
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	vec := make([]float64, f.dims)
	vec[0] = float64(len(text))
	return vec, nil
}

type upsertRequest struct {
	Points []struct {
		ID      string         `json:"id"`
		Vector  []float64      `json:"vector"`
		Payload map[string]any `json:"payload"`
	} `json:"points"`
}

func TestStore_IndexDocument(t *testing.T) {
	var upserts []upsertRequest
	collectionCreates := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/course_docs":
			collectionCreates++
		case r.Method == http.MethodPut && r.URL.Path == "/collections/course_docs/points":
			var req upsertRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			upserts = append(upserts, req)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	emb := &fakeEmbedder{dims: 8}
	store := NewStore(Config{URL: server.URL, Collection: "course_docs", ChunkSize: 512}, emb)

	text := strings.Repeat("a", 1000)
	meta := map[string]any{"filename": "notes.pdf", "course": "Algebra"}
	if err := store.IndexDocument(context.Background(), text, meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if collectionCreates != 1 {
		t.Errorf("expected 1 collection create, got %d", collectionCreates)
	}
	if len(upserts) != 2 {
		t.Fatalf("expected 2 point upserts, got %d", len(upserts))
	}
	if len(emb.calls) != 2 {
		t.Fatalf("expected 2 embed calls, got %d", len(emb.calls))
	}
	if len(emb.calls[0]) != 512 || len(emb.calls[1]) != 488 {
		t.Errorf("expected chunks of 512 and 488, got %d and %d", len(emb.calls[0]), len(emb.calls[1]))
	}

	first := upserts[0].Points[0]
	if first.ID == "" {
		t.Error("point id missing")
	}
	if len(first.Vector) != 8 {
		t.Errorf("expected 8-dim vector, got %d", len(first.Vector))
	}
	if first.Payload["filename"] != "notes.pdf" || first.Payload["course"] != "Algebra" {
		t.Errorf("source metadata missing from payload: %v", first.Payload)
	}
	if first.Payload["chunk"] != float64(0) || first.Payload["total_chunks"] != float64(2) {
		t.Errorf("chunk position missing from payload: %v", first.Payload)
	}

	// The stored excerpt is truncated, never the whole chunk.
	excerptText, _ := first.Payload["chunk_text"].(string)
	if len(excerptText) != excerptLimit+len("...") {
		t.Errorf("expected truncated excerpt, got %d chars", len(excerptText))
	}

	second := upserts[1].Points[0]
	if second.ID == first.ID {
		t.Error("points must get independent generated ids")
	}
	if second.Payload["chunk"] != float64(1) {
		t.Errorf("expected chunk index 1, got %v", second.Payload["chunk"])
	}
}

func TestStore_IndexDocument_EmbeddingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the store when embedding fails")
	}))
	defer server.Close()

	emb := &fakeEmbedder{err: core.ErrEmbedding}
	store := NewStore(Config{URL: server.URL, Collection: "course_docs", ChunkSize: 512}, emb)

	err := store.IndexDocument(context.Background(), "some text", nil)
	if !errors.Is(err, core.ErrEmbedding) {
		t.Errorf("expected ErrEmbedding, got %v", err)
	}
}

func TestStore_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/course_docs/points/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["limit"] != float64(5) {
			t.Errorf("expected limit 5, got %v", req["limit"])
		}
		if req["with_payload"] != true {
			t.Error("expected with_payload: true")
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"score": 0.92, "payload": map[string]any{"chunk_text": "the deadline is May 5", "filename": "dates.txt"}},
				{"score": 0.40, "payload": map[string]any{"chunk_text": "irrelevant", "filename": "other.txt"}},
				{"score": 0.10, "payload": nil},
			},
		})
	}))
	defer server.Close()

	store := NewStore(Config{URL: server.URL, Collection: "course_docs", ChunkSize: 512}, &fakeEmbedder{dims: 4})

	results, err := store.Search(context.Background(), "what is the deadline", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The payload-less point is dropped, the rest keep store order.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Excerpt != "the deadline is May 5" || results[0].Score != 0.92 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[0].Metadata["filename"] != "dates.txt" {
		t.Errorf("metadata not carried through: %v", results[0].Metadata)
	}
}

func TestStore_Search_Errors(t *testing.T) {
	t.Run("store unreachable", func(t *testing.T) {
		store := NewStore(Config{URL: "http://127.0.0.1:1", Collection: "c", ChunkSize: 512}, &fakeEmbedder{dims: 4})
		results, err := store.Search(context.Background(), "query", 5)
		if !errors.Is(err, core.ErrVectorStore) {
			t.Errorf("expected ErrVectorStore, got %v", err)
		}
		if results != nil {
			t.Errorf("expected no results on failure, got %v", results)
		}
	})

	t.Run("embedding failure surfaces as store error", func(t *testing.T) {
		store := NewStore(Config{URL: "http://127.0.0.1:1", Collection: "c", ChunkSize: 512}, &fakeEmbedder{err: errors.New("boom")})
		_, err := store.Search(context.Background(), "query", 5)
		if !errors.Is(err, core.ErrVectorStore) {
			t.Errorf("expected ErrVectorStore, got %v", err)
		}
	})

	t.Run("server error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "collection not found", http.StatusNotFound)
		}))
		defer server.Close()

		store := NewStore(Config{URL: server.URL, Collection: "missing", ChunkSize: 512}, &fakeEmbedder{dims: 4})
		_, err := store.Search(context.Background(), "query", 5)
		if !errors.Is(err, core.ErrVectorStore) {
			t.Errorf("expected ErrVectorStore, got %v", err)
		}
	})
}

// Package qdrant adapts an external Qdrant instance as the vector index.
// It speaks the REST API directly: points carry a float vector plus an
// arbitrary payload, and searches return points ordered by similarity.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/internal/rag"
	"github.com/sandevgo/campusrag/pkg/log"
)

// excerptLimit bounds the fragment preview stored in the point payload.
const excerptLimit = 200

type Config struct {
	URL        string
	APIKey     string
	Collection string
	ChunkSize  int
	Timeout    time.Duration
}

// Store chunks, embeds and indexes documents, and answers similarity
// queries. It owns fragments exclusively once they are stored. Instances
// hold no shared mutable state, so parallel indexing workers can each use
// their own Store.
type Store struct {
	url        string
	apiKey     string
	collection string
	chunkSize  int
	client     *http.Client
	embedder   core.Embedder
	ensured    bool
}

func NewStore(cfg Config, embedder core.Embedder) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		chunkSize:  cfg.ChunkSize,
		client:     &http.Client{Timeout: timeout},
		embedder:   embedder,
	}
}

// IndexDocument splits the text into fragments, embeds each one and
// upserts it as an independent point under a freshly generated id.
// Re-indexing the same document therefore creates duplicate points; there
// is no content-based deduplication.
func (s *Store) IndexDocument(ctx context.Context, text string, metadata map[string]any) error {
	chunks := rag.ChunkText(text, s.chunkSize)

	for i, chunk := range chunks {
		vector, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("index chunk %d: %w", i, err)
		}

		if err := s.ensureCollection(ctx, len(vector)); err != nil {
			return err
		}

		payload := make(map[string]any, len(metadata)+3)
		for k, v := range metadata {
			payload[k] = v
		}
		payload["chunk"] = i
		payload["total_chunks"] = len(chunks)
		payload["chunk_text"] = excerpt(chunk)

		point := map[string]any{
			"id":      uuid.NewString(),
			"vector":  vector,
			"payload": payload,
		}
		body := map[string]any{"points": []any{point}}

		path := fmt.Sprintf("/collections/%s/points?wait=true", s.collection)
		if err := s.do(ctx, http.MethodPut, path, body, nil); err != nil {
			return fmt.Errorf("%w: upsert chunk %d: %v", core.ErrVectorStore, i, err)
		}
	}

	log.FromCtx(ctx).Debug().
		Int("chunks", len(chunks)).
		Str("collection", s.collection).
		Msg("document indexed")
	return nil
}

// Search embeds the query and returns at most limit results, highest
// similarity first. On any failure the caller gets an error and no
// partially constructed results.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]core.SearchResult, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrVectorStore, err)
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", s.collection)
	if err := s.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: search: %v", core.ErrVectorStore, err)
	}

	results := make([]core.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		if r.Payload == nil {
			continue
		}
		text, _ := r.Payload["chunk_text"].(string)
		results = append(results, core.SearchResult{
			Excerpt:  text,
			Metadata: r.Payload,
			Score:    r.Score,
		})
	}
	return results, nil
}

// ensureCollection creates the collection on first use. Qdrant answers the
// PUT with 200 when a collection with the same schema already exists, so
// the call is idempotent.
func (s *Store) ensureCollection(ctx context.Context, dimension int) error {
	if s.ensured {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	path := "/collections/" + s.collection
	if err := s.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("%w: create collection %s: %v", core.ErrVectorStore, s.collection, err)
	}
	s.ensured = true
	return nil
}

func (s *Store) do(ctx context.Context, method, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s: %s", method, path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func excerpt(chunk string) string {
	runes := []rune(chunk)
	if len(runes) <= excerptLimit {
		return chunk
	}
	return string(runes[:excerptLimit]) + "..."
}

package core

import "context"

// Embedder turns text into a fixed-length vector. Every call on the same
// backend returns vectors of identical dimensionality; on failure it
// returns an error wrapping ErrEmbedding, never a placeholder vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces an answer from an instructional prompt plus a separate
// retrieved-context block. The two are distinct fields on the wire.
type Generator interface {
	Generate(ctx context.Context, prompt, contextBlock string) (string, error)
}

package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sandevgo/campusrag/internal/core"
)

// Ollama talks to a locally hosted inference server. The same instance
// serves embeddings and generation, with separate model names for each.
type Ollama struct {
	baseProvider
	embedModel string
}

func NewOllama(baseURL, model, embedModel string) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(baseURL, "", model),
		embedModel:   embedModel,
	}
}

func (o *Ollama) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	payload := map[string]any{
		"model":  o.embedModel,
		"prompt": text,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/embeddings", payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama embeddings: %v", core.ErrEmbedding, err)
	}

	var result struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("%w: ollama embeddings: %v", core.ErrEmbedding, err)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("%w: ollama returned an empty embedding", core.ErrEmbedding)
	}
	return result.Embedding, nil
}

func (o *Ollama) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	payload := map[string]any{
		"model":  o.model,
		"prompt": fmt.Sprintf("%s\n\nRelevant context:\n%s", prompt, contextBlock),
		"stream": false,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", payload, nil)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return result.Response, nil
}

package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sandevgo/campusrag/internal/core"
)

// OpenAI talks to the hosted API, authenticated with a bearer credential.
type OpenAI struct {
	baseProvider
	embedModel string
}

func NewOpenAI(baseURL, apiKey, model, embedModel string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing OpenAI API key", core.ErrEmbedding)
	}
	return &OpenAI{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
		embedModel:   embedModel,
	}, nil
}

func (o *OpenAI) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + o.apiKey}
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	payload := map[string]any{
		"model": o.embedModel,
		"input": text,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/embeddings", payload, o.authHeaders())
	if err != nil {
		return nil, fmt.Errorf("%w: openai embeddings: %v", core.ErrEmbedding, err)
	}

	var result struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("%w: openai embeddings: %v", core.ErrEmbedding, err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: openai returned no embedding data", core.ErrEmbedding)
	}
	return result.Data[0].Embedding, nil
}

func (o *OpenAI) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	payload := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": "Use the following course material to answer.\n\n" + contextBlock},
			{"role": "user", "content": prompt},
		},
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, o.authHeaders())
	if err != nil {
		return "", fmt.Errorf("openai completions: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return "", fmt.Errorf("openai completions: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai completions: empty choices")
	}
	return result.Choices[0].Message.Content, nil
}

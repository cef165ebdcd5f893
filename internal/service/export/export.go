// Package export turns recorded conversations into fine-tuning datasets.
// Two output formats exist: OpenAI chat-format JSONL and a plain
// instruction/response JSON file for local tooling.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/pkg/log"
)

const (
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	openAIFilename = "openai_training_data.jsonl"
	localFilename  = "local_training_data.json"

	systemPrompt = "You are a helpful assistant that answers questions based on the provided information."
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIExample struct {
	Messages []chatMessage `json:"messages"`
}

type localExample struct {
	Instruction string `json:"instruction"`
	Response    string `json:"response"`
}

// Pair is one question/answer turn extracted from a session.
type Pair struct {
	Question string
	Answer   string
}

type Service struct {
	repo      core.ConversationStore
	outputDir string
}

func NewService(repo core.ConversationStore, outputDir string) *Service {
	return &Service{repo: repo, outputDir: outputDir}
}

// Run collects question/answer pairs from every stored session and writes
// the training file for the given provider. It returns the path of the
// written file.
func (s *Service) Run(ctx context.Context, provider string) (string, error) {
	logger := log.FromCtx(ctx)

	pairs, err := s.collectPairs(ctx)
	if err != nil {
		return "", err
	}
	if len(pairs) == 0 {
		return "", fmt.Errorf("no conversation data available for fine-tuning")
	}
	logger.Info().Int("pairs", len(pairs)).Msg("collected training pairs")

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	switch provider {
	case ProviderOpenAI:
		return s.writeOpenAI(ctx, pairs)
	case ProviderLocal:
		return s.writeLocal(ctx, pairs)
	default:
		return "", fmt.Errorf("unsupported fine-tuning provider %q", provider)
	}
}

// collectPairs walks all sessions and extracts consecutive user/assistant
// pairs. Sessions with fewer than two usable messages contribute nothing.
func (s *Service) collectPairs(ctx context.Context) ([]Pair, error) {
	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var pairs []Pair
	for _, session := range sessions {
		history, err := s.repo.GetHistory(ctx, session.ID)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("session_id", session.ID).Msg("skipping session")
			continue
		}

		valid := make([]core.Message, 0, len(history))
		for _, msg := range history {
			if (msg.Sender == core.RoleUser || msg.Sender == core.RoleAssistant) && strings.TrimSpace(msg.Content) != "" {
				valid = append(valid, msg)
			}
		}
		if len(valid) < 2 {
			continue
		}

		for i := 0; i+1 < len(valid); i += 2 {
			if valid[i].Sender == core.RoleUser && valid[i+1].Sender == core.RoleAssistant {
				pairs = append(pairs, Pair{Question: valid[i].Content, Answer: valid[i+1].Content})
			}
		}
	}
	return pairs, nil
}

func (s *Service) writeOpenAI(ctx context.Context, pairs []Pair) (string, error) {
	path := filepath.Join(s.outputDir, openAIFilename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create training file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, pair := range pairs {
		example := openAIExample{Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: core.RoleUser, Content: pair.Question},
			{Role: core.RoleAssistant, Content: pair.Answer},
		}}
		if err := enc.Encode(example); err != nil {
			return "", fmt.Errorf("failed to write training example: %w", err)
		}
	}

	log.FromCtx(ctx).Info().Str("path", path).Msg("training data saved")
	return path, nil
}

func (s *Service) writeLocal(ctx context.Context, pairs []Pair) (string, error) {
	path := filepath.Join(s.outputDir, localFilename)

	examples := make([]localExample, len(pairs))
	for i, pair := range pairs {
		examples[i] = localExample{Instruction: pair.Question, Response: pair.Answer}
	}

	data, err := json.MarshalIndent(examples, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal training data: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write training file: %w", err)
	}

	log.FromCtx(ctx).Info().Str("path", path).Msg("training data saved")
	return path, nil
}

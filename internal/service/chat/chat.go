// Package chat orchestrates a single question/answer turn: retrieve
// candidate fragments, rerank them, compose a prompt from the session
// history and hand it to the generation backend.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/internal/rag"
	"github.com/sandevgo/campusrag/pkg/log"
)

const (
	searchLimit  = 5
	topFragments = 3
)

type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]core.SearchResult, error)
}

type Service struct {
	store     Searcher
	generator core.Generator
	repo      core.ConversationStore
}

func NewService(store Searcher, generator core.Generator, repo core.ConversationStore) *Service {
	return &Service{
		store:     store,
		generator: generator,
		repo:      repo,
	}
}

// Ask runs the full pipeline for one question. It never returns a pipeline
// error to the caller: when retrieval or generation fails the answer is a
// fixed apology, and both the question and the answer are persisted either
// way so the history stays paired.
func (s *Service) Ask(ctx context.Context, sessionID, question string) string {
	logger := log.FromCtx(ctx)

	answer, err := s.generate(ctx, sessionID, question)
	if err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("answer generation degraded")
		answer = Apology
	}

	// Store failures must not unwind an already-produced answer.
	if err := s.repo.AddMessage(ctx, sessionID, core.RoleUser, question); err != nil {
		logger.Error().Err(err).Msg("failed to save user message")
	}
	if err := s.repo.AddMessage(ctx, sessionID, core.RoleAssistant, answer); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant message")
	}

	return answer
}

func (s *Service) generate(ctx context.Context, sessionID, question string) (string, error) {
	results, err := s.store.Search(ctx, question, searchLimit)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}

	fragments := make([]string, 0, len(results))
	for _, r := range results {
		fragments = append(fragments, r.Excerpt)
	}
	ranked := rag.Rerank(question, fragments)

	top := topFragments
	if len(ranked) < top {
		top = len(ranked)
	}
	contextBlock := strings.Join(ranked[:top], "\n")

	history, err := s.repo.GetHistory(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("history fetch failed: %w", err)
	}

	prompt := buildPrompt(transcript(history), question)
	debugTokens(ctx, prompt, contextBlock)

	answer, err := s.generator.Generate(ctx, prompt, contextBlock)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return answer, nil
}

func transcript(history []core.Message) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, msg.Sender+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// CreateSession starts a fresh conversation.
func (s *Service) CreateSession(ctx context.Context) (core.Session, error) {
	return s.repo.CreateSession(ctx)
}

// ListSessions returns all conversations, most recently active first.
func (s *Service) ListSessions(ctx context.Context) ([]core.Session, error) {
	return s.repo.ListSessions(ctx)
}

// History returns the session's messages in chronological order.
func (s *Service) History(ctx context.Context, sessionID string) ([]core.Message, error) {
	return s.repo.GetHistory(ctx, sessionID)
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// debugTokens reports the approximate prompt size. The encoding is loaded
// lazily since it is only worth the cost when debug logging is on.
func debugTokens(ctx context.Context, prompt, contextBlock string) {
	logger := log.FromCtx(ctx)
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			logger.Debug().Err(err).Msg("token encoding unavailable")
			return
		}
		encoding = enc
	})
	if encoding == nil {
		return
	}

	logger.Debug().
		Int("prompt_tokens", len(encoding.Encode(prompt, nil, nil))).
		Int("context_tokens", len(encoding.Encode(contextBlock, nil, nil))).
		Msg("prompt assembled")
}

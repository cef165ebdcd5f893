// Package cli is the interactive console chat. Every run starts a fresh
// conversation session.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/service/chat"
	"github.com/sandevgo/campusrag/internal/service/ui"
	"github.com/sandevgo/campusrag/pkg/log"
)

type ReadLine struct {
	cfg  *config.AppConfig
	chat *chat.Service
	rl   *readline.Instance
}

func NewReadLine(chatSvc *chat.Service, cfg *config.AppConfig) (*ReadLine, error) {
	runtimePath := cfg.GetRuntimePath()
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:  cfg,
		chat: chatSvc,
		rl:   rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	session, err := r.chat.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	logger.Info().Str("session_id", session.ID).Msg("interactive chat started")

	fmt.Fprintln(r.rl.Stdout(), ui.TitleStyle.Render("Welcome to the course document chat!"))
	fmt.Fprintln(r.rl.Stdout(), ui.DescStyle.Render("Type 'exit' to quit."))

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		fmt.Fprintln(r.rl.Stdout(), ui.StatusStyle.Render("Searching course material..."))

		answer := r.chat.Ask(ctx, session.ID, line)
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.AssistantStyle.Render(answer))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

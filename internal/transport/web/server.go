// Package web exposes the question answering pipeline over HTTP as a small
// JSON API.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/campusrag/internal/service/chat"
	"github.com/sandevgo/campusrag/pkg/log"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	// Generation calls can take a while, keep the write timeout generous.
	writeTimeout = 90 * time.Second
	idleTimeout  = 120 * time.Second
)

type Server struct {
	chat *chat.Service
	srv  *http.Server
}

func NewServer(chatSvc *chat.Service, addr string) *Server {
	s := &Server{chat: chatSvc}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}/messages", s.handleMessages)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           chain(mux, recoveryMiddleware, loggingMiddleware),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("addr", s.srv.Addr).Msg("web server listening")

	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests. The caller's context is usually
// already cancelled at this point, so the drain deadline is independent.
func (s *Server) Shutdown(context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

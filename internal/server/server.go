// Package server exposes the task store as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nibzard/todo-go/internal/todo"
)

const shutdownTimeout = 5 * time.Second

// Server serves the task API for a single store.
type Server struct {
	store  *todo.Store
	logger *log.Logger
	router *mux.Router
}

// New creates a server for store. A nil logger discards output.
func New(store *todo.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	// Fixed paths are registered before {id} so they win.
	r.HandleFunc("/api/tasks", s.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", s.addTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/delete-completed", s.deleteCompleted).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/delete-all", s.deleteAll).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{id}/complete", s.toggleTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/stats", s.stats).Methods(http.MethodGet)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return requestID(accessLog(s.logger, s.router))
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String(), "tasks_file", s.store.Path())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Copyright (c) Nimbus AI. All rights reserved.

// Package httpapi exposes registered agents and workflows over HTTP: JSON
// chat endpoints (sync and SSE streaming), workflow runs, listings, and the
// interactive explorer page.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
	"github.com/nimbus-ai/weather-agent/workflow"
)

// Server routes HTTP requests to registered agents and workflows.
type Server struct {
	agents    map[string]*ak.Agent
	workflows map[string]*workflow.Workflow
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*ak.Session
}

// NewServer creates an empty server. Register agents and workflows before
// calling [Server.Router].
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		agents:    make(map[string]*ak.Agent),
		workflows: make(map[string]*workflow.Workflow),
		logger:    logger,
		sessions:  make(map[string]*ak.Session),
	}
}

// RegisterAgent makes an agent available under its name.
func (s *Server) RegisterAgent(agent *ak.Agent) {
	s.agents[agent.Name()] = agent
}

// RegisterWorkflow makes a workflow available under its name.
func (s *Server) RegisterWorkflow(wf *workflow.Workflow) {
	s.workflows[wf.Name()] = wf
}

// Router builds the HTTP handler with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleExplorer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/agents", s.handleListAgents)
		r.Get("/workflows", s.handleListWorkflows)
		r.Post("/agents/{name}/chat", s.handleChat)
		r.Post("/agents/{name}/chat/stream", s.handleChatStream)
		r.Post("/workflows/{name}/run", s.handleWorkflowRun)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionFor returns the session for the given agent and session ID,
// creating it on first use. An empty ID gets a fresh throwaway session.
func (s *Server) sessionFor(agent *ak.Agent, sessionID string) (*ak.Session, error) {
	if sessionID == "" {
		return agent.NewSession()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := agent.Name() + "/" + sessionID
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	sess, err := agent.NewSession()
	if err != nil {
		return nil, err
	}
	s.sessions[key] = sess
	return sess, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

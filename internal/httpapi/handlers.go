// Copyright (c) Nimbus AI. All rights reserved.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// routeName extracts the {name} URL parameter, unescaping it so names with
// spaces (like "Weather Agent") route correctly.
func routeName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// chatRequest is the JSON body for POST /api/agents/{name}/chat.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// chatResponse is the JSON body returned from the chat endpoint.
type chatResponse struct {
	Response  string          `json:"response"`
	SessionID string          `json:"sessionId,omitempty"`
	Usage     ak.UsageDetails `json:"usage,omitempty"`
}

// agentInfo describes a registered agent in listings.
type agentInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// workflowInfo describes a registered workflow in listings.
type workflowInfo struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Steps       []stepInfo `json:"steps"`
}

type stepInfo struct {
	ID          string          `json:"id"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

func (s *Server) handleListAgents(w http.ResponseWriter, _ *http.Request) {
	infos := make([]agentInfo, 0, len(s.agents))
	for _, agent := range s.agents {
		info := agentInfo{
			Name:        agent.Name(),
			Description: agent.Description(),
		}
		for _, t := range agent.Tools() {
			info.Tools = append(info.Tools, t.Name())
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": infos})
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, _ *http.Request) {
	infos := make([]workflowInfo, 0, len(s.workflows))
	for _, wf := range s.workflows {
		info := workflowInfo{
			Name:        wf.Name(),
			Description: wf.Description(),
		}
		for _, step := range wf.Steps() {
			info.Steps = append(info.Steps, stepInfo{
				ID:          step.ID(),
				Description: step.Description(),
				InputSchema: step.InputSchema(),
			})
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"workflows": infos})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	name := routeName(r)
	agent, ok := s.agents[name]
	if !ok {
		writeError(w, http.StatusNotFound, "agent not found: "+name)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	session, err := s.sessionFor(agent, req.SessionID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "session open failed", "agent", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}

	resp, err := agent.Run(r.Context(),
		[]ak.Message{ak.NewUserMessage(req.Message)},
		ak.WithSession(session),
	)
	if err != nil {
		s.writeAgentError(w, r, name, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  resp.Text(),
		SessionID: req.SessionID,
		Usage:     resp.Usage,
	})
}

// handleChatStream streams the agent response as server-sent events. Each
// text delta is one event; the stream ends with a [DONE] event.
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	name := routeName(r)
	agent, ok := s.agents[name]
	if !ok {
		writeError(w, http.StatusNotFound, "agent not found: "+name)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	session, err := s.sessionFor(agent, req.SessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}

	stream, err := agent.RunStream(r.Context(),
		[]ak.Message{ak.NewUserMessage(req.Message)},
		ak.WithSession(session),
	)
	if err != nil {
		s.writeAgentError(w, r, name, err)
		return
	}
	defer stream.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for {
		update, ok, err := stream.Next(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "stream error", "agent", name, "error", err)
			writeSSE(w, map[string]string{"error": err.Error()})
			flusher.Flush()
			return
		}
		if !ok {
			break
		}
		if text := update.Text(); text != "" {
			writeSSE(w, map[string]string{"delta": text})
			flusher.Flush()
		}
	}

	_, _ = w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
}

// workflowRunRequest is the JSON body for POST /api/workflows/{name}/run.
type workflowRunRequest struct {
	Input json.RawMessage `json:"input"`
}

func (s *Server) handleWorkflowRun(w http.ResponseWriter, r *http.Request) {
	name := routeName(r)
	wf, ok := s.workflows[name]
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found: "+name)
		return
	}

	var req workflowRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := wf.Run(r.Context(), req.Input)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "workflow failed", "workflow", name, "error", err)
		// Return the partial result so callers can see which step failed.
		status := http.StatusBadGateway
		if result != nil && len(result.Steps) > 0 && strings.Contains(result.Steps[len(result.Steps)-1].Error, "required") {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeAgentError maps agent errors to HTTP status codes: upstream service
// failures become 502, invalid requests 400, everything else 500.
func (s *Server) writeAgentError(w http.ResponseWriter, r *http.Request, agent string, err error) {
	s.logger.ErrorContext(r.Context(), "agent run failed", "agent", agent, "error", err)

	switch {
	case errors.Is(err, ak.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ak.ErrAuth), errors.Is(err, ak.ErrService), errors.Is(err, ak.ErrContentFilter):
		writeError(w, http.StatusBadGateway, "inference request failed: "+err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "agent execution failed")
	}
}

func writeSSE(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write([]byte("data: "))
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n\n"))
}

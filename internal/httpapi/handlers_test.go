// Copyright (c) Nimbus AI. All rights reserved.

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
	"github.com/nimbus-ai/weather-agent/workflow"
)

// stubChat implements ak.ChatClient with a fixed reply or error.
type stubChat struct {
	reply string
	err   error
	calls int
}

func (s *stubChat) Response(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &ak.ChatResponse{
		Messages: []ak.Message{ak.NewAssistantMessage(s.reply)},
		Usage:    ak.UsageDetails{TotalTokens: 9},
	}, nil
}

func (s *stubChat) StreamResponse(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	if s.err != nil {
		return nil, s.err
	}
	return ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		for _, part := range []string{"It's ", "sunny."} {
			ch <- ak.ChatResponseUpdate{
				Role:     ak.RoleAssistant,
				Contents: ak.Contents{&ak.TextContent{Text: part}},
			}
		}
		return nil
	}), nil
}

func newTestServer(t *testing.T, chat *stubChat) *Server {
	t.Helper()

	agent := ak.NewAgent(chat,
		ak.WithName("Weather Agent"),
		ak.WithDescription("test agent"),
	)

	step := workflow.NewTypedStep("echo", "Echoes the input",
		func(ctx context.Context, in struct {
			City string `json:"city"`
		}) (map[string]string, error) {
			if in.City == "" {
				return nil, errors.New("city is required")
			}
			return map[string]string{"city": in.City}, nil
		},
	)

	srv := NewServer(nil)
	srv.RegisterAgent(agent)
	srv.RegisterWorkflow(workflow.New("weather-activities", []workflow.Step{step}))
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "hi"})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestExplorerServesHTML(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "hi"})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Weather Agent Explorer")
}

func TestListAgents(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "hi"})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/agents", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Agents []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Agents, 1)
	assert.Equal(t, "Weather Agent", body.Agents[0].Name)
}

func TestListWorkflows(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "hi"})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/workflows", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Workflows []struct {
			Name  string `json:"name"`
			Steps []struct {
				ID string `json:"id"`
			} `json:"steps"`
		} `json:"workflows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Workflows, 1)
	assert.Equal(t, "weather-activities", body.Workflows[0].Name)
	require.Len(t, body.Workflows[0].Steps, 1)
	assert.Equal(t, "echo", body.Workflows[0].Steps[0].ID)
}

func TestChat(t *testing.T) {
	chat := &stubChat{reply: "It's sunny in Lisbon."}
	srv := newTestServer(t, chat)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/agents/Weather%20Agent/chat",
		`{"message":"weather in Lisbon?","sessionId":"s-1"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "It's sunny in Lisbon.", body.Response)
	assert.Equal(t, "s-1", body.SessionID)
	assert.Equal(t, 9, body.Usage.TotalTokens)
}

func TestChat_SessionPersistsAcrossRequests(t *testing.T) {
	chat := &stubChat{reply: "ok"}
	srv := newTestServer(t, chat)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/agents/Weather%20Agent/chat",
		`{"message":"first","sessionId":"s-2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/agents/Weather%20Agent/chat",
		`{"message":"second","sessionId":"s-2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Len(t, srv.sessions, 1, "both requests should share one session")
}

func TestChat_Errors(t *testing.T) {
	t.Run("unknown agent", func(t *testing.T) {
		srv := newTestServer(t, &stubChat{reply: "hi"})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/agents/nope/chat", `{"message":"hi"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing message", func(t *testing.T) {
		srv := newTestServer(t, &stubChat{reply: "hi"})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/agents/Weather%20Agent/chat", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newTestServer(t, &stubChat{reply: "hi"})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/agents/Weather%20Agent/chat", `{nope`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		svcErr := &ak.ServiceError{StatusCode: 500, Message: "upstream down", Err: ak.ErrService}
		srv := newTestServer(t, &stubChat{err: svcErr})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/agents/Weather%20Agent/chat", `{"message":"hi"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestChatStream(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "unused"})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/agents/Weather%20Agent/chat/stream",
		`{"message":"weather?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	events := rec.Body.String()
	assert.Contains(t, events, `data: {"delta":"It's "}`)
	assert.Contains(t, events, `data: {"delta":"sunny."}`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(events), "data: [DONE]"), "stream should end with [DONE]: %q", events)
}

func TestWorkflowRun(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "hi"})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/workflows/weather-activities/run",
		`{"input":{"city":"Lisbon"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result workflow.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Failed)
	require.Len(t, result.Steps, 1)
	assert.JSONEq(t, `{"city":"Lisbon"}`, string(result.Output))
}

func TestWorkflowRun_Errors(t *testing.T) {
	t.Run("unknown workflow", func(t *testing.T) {
		srv := newTestServer(t, &stubChat{reply: "hi"})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/workflows/nope/run", `{"input":{}}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("step failure returns partial result", func(t *testing.T) {
		srv := newTestServer(t, &stubChat{reply: "hi"})
		rec := doJSON(t, srv.Router(), http.MethodPost, "/api/workflows/weather-activities/run",
			`{"input":{}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var result workflow.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Failed)
		require.Len(t, result.Steps, 1)
		assert.Contains(t, result.Steps[0].Error, "city is required")
	})
}

package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/agents"
	"github.com/remora-ai/remora/internal/llm"
	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayClient answers every chat call with the same scripted turn: one
// add_reminder tool call, then a final message.
type replayClient struct{}

func (replayClient) Model() string { return "test-model" }

func (replayClient) ChatCompletion(_ context.Context, messages []llm.Message, _ *llm.ChatCompletionOptions) (*llm.ChatResponse, error) {
	return finalResponse(), nil
}

func (replayClient) ChatCompletionWithTools(_ context.Context, messages []llm.Message, _ []llm.ToolDefinition, _ *llm.ChatCompletionOptions) (*llm.ChatResponse, error) {
	// First call of a turn carries no tool results yet.
	if messages[len(messages)-1].Role == "user" {
		return &llm.ChatResponse{
			Choices: []llm.Choice{{
				FinishReason: "tool_calls",
				Message: llm.Message{
					Role: "assistant",
					ToolCalls: []llm.ToolCall{{
						ID:       "call_1",
						Type:     "function",
						Function: llm.FunctionCall{Name: "add_reminder", Arguments: `{"reminder":"water plants"}`},
					}},
				},
			}},
		}, nil
	}
	return finalResponse(), nil
}

func finalResponse() *llm.ChatResponse {
	return &llm.ChatResponse{
		Choices: []llm.Choice{{
			FinishReason: "stop",
			Message:      llm.Message{Role: "assistant", Content: "Noted!"},
		}},
	}
}

func newTestServer(t *testing.T) (*Server, session.Service) {
	t.Helper()

	svc := session.NewInMemoryService()
	t.Cleanup(func() { svc.Close() })

	catalog, err := agents.NewCatalog(replayClient{}, tools.NewWebSearchTool("key", ""))
	require.NoError(t, err)

	runner := agent.NewRunner(replayClient{}, svc)
	return NewServer(catalog, runner, svc, "remora"), svc
}

func TestRunAgent_CreatesSessionAndRuns(t *testing.T) {
	t.Parallel()

	server, svc := newTestServer(t)

	body := strings.NewReader(`{"user_id":"alice","message":"remind me to water plants"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/agents/memory_agent/run", body)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp runResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.NewSession)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "Noted!", resp.Content)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "add_reminder", resp.ToolCalls[0].ToolName)

	// The session was persisted with the mutated state.
	sess, err := svc.Get(context.Background(), "remora", "alice", resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"water plants"}, session.Reminders(sess.State))
}

func TestRunAgent_ReusesMostRecentSession(t *testing.T) {
	t.Parallel()

	server, svc := newTestServer(t)

	sess, err := svc.Create(context.Background(), "remora", "bob", nil)
	require.NoError(t, err)

	body := strings.NewReader(`{"user_id":"bob","message":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/agents/greeting_agent/run", body)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp runResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.NewSession)
	assert.Equal(t, sess.ID, resp.SessionID)
}

func TestRunAgent_UnknownAgent(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/agents/nope/run", strings.NewReader(`{"user_id":"u","message":"m"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunAgent_MissingFields(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/agents/memory_agent/run", strings.NewReader(`{"user_id":"u"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionEndpoints(t *testing.T) {
	t.Parallel()

	server, svc := newTestServer(t)

	sess, err := svc.Create(context.Background(), "remora", "carol", session.State{"user_name": "Carol"})
	require.NoError(t, err)

	// List.
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/?user_id=carol", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), sess.ID)

	// Get.
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"?user_id=carol", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Carol")

	// Missing user_id.
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID, nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, "/api/sessions/"+sess.ID+"?user_id=carol", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err = svc.Get(context.Background(), "remora", "carol", sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Run a turn so the counters have samples.
	body := strings.NewReader(`{"user_id":"dave","message":"remind me to stretch"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/agents/memory_agent/run", body)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	metrics, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "remora_agent_runs_total")
	assert.Contains(t, string(metrics), "remora_tool_calls_total")
}

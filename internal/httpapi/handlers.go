package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/pkg/log"
)

type runRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type runResponse struct {
	SessionID  string                   `json:"session_id"`
	NewSession bool                     `json:"new_session"`
	Content    string                   `json:"content"`
	ToolCalls  []session.ToolCallRecord `json:"tool_calls,omitempty"`
	Iterations int                      `json:"iterations"`
	State      session.State            `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"agents": s.catalog.Names()})
}

// handleRunAgent executes one conversational turn. When the request
// names no session, the user's most recent session is continued, or a
// fresh one is created.
func (s *Server) handleRunAgent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ag, err := s.catalog.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id and message are required"))
		return
	}

	ctx := r.Context()

	sessionID := req.SessionID
	created := false
	if sessionID == "" {
		sess, isNew, err := session.FindOrCreate(ctx, s.service, s.appName, req.UserID, nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		sessionID = sess.ID
		created = isNew
	}

	started := time.Now()
	result, err := s.runner.Run(ctx, ag, s.appName, req.UserID, sessionID, req.Message)
	s.metrics.observeRun(name, err, time.Since(started).Seconds())
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		log.Error("agent %s run failed: %v", name, err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	for _, call := range result.ToolCalls {
		s.metrics.observeToolCall(call.ToolName, call.IsError)
	}

	sess, err := s.service.Get(ctx, s.appName, req.UserID, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		SessionID:  sessionID,
		NewSession: created,
		Content:    result.Content,
		ToolCalls:  result.ToolCalls,
		Iterations: result.Iterations,
		State:      sess.State,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id query parameter is required"))
		return
	}

	sessions, err := s.service.List(r.Context(), s.appName, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id query parameter is required"))
		return
	}

	sess, err := s.service.Get(r.Context(), s.appName, userID, chi.URLParam(r, "sessionID"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id query parameter is required"))
		return
	}

	err := s.service.Delete(r.Context(), s.appName, userID, chi.URLParam(r, "sessionID"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

package session

import (
	"encoding/json"
	"time"
)

// State holds session-scoped key-value data visible to action handlers
// and to instruction templating. Values must be JSON-compatible; absent
// keys are read back as caller-supplied defaults, never as errors.
type State map[string]any

// Get returns the stored value for key, or def when the key is absent.
func (s State) Get(key string, def any) any {
	if s == nil {
		return def
	}
	v, ok := s[key]
	if !ok {
		return def
	}
	return v
}

// Set creates or overwrites the entry for key.
func (s State) Set(key string, value any) {
	s[key] = value
}

// Clone returns a deep copy of the state via a JSON round trip so that
// stores can hand out snapshots without aliasing the caller's map.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		// Non-serializable values are outside the contract; fall back to
		// a shallow copy rather than losing the whole state.
		out := make(State, len(s))
		for k, v := range s {
			out[k] = v
		}
		return out
	}
	out := make(State, len(s))
	if err := json.Unmarshal(data, &out); err != nil {
		return State{}
	}
	return out
}

// Session is a persisted, identified conversation context. It owns one
// State mapping and an ordered, append-only log of events.
type Session struct {
	ID        string    `json:"id"`
	AppName   string    `json:"app_name"`
	UserID    string    `json:"user_id"`
	State     State     `json:"state"`
	Events    []Event   `json:"events"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event records a single turn contribution: a user message, an agent
// response, or the tool calls an agent made while producing it.
type Event struct {
	ID        string           `json:"id"`
	Author    string           `json:"author"`
	Content   string           `json:"content"`
	ToolCalls []ToolCallRecord `json:"tool_calls,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// ToolCallRecord records a single tool call and its result.
type ToolCallRecord struct {
	ToolName  string `json:"tool_name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
	IsError   bool   `json:"is_error,omitempty"`
}

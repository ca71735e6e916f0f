package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/remora-ai/remora/internal/session"
)

// Context carries the per-invocation state an action handler may read
// and rewrite. It is passed explicitly into every Execute call; there is
// no ambient process-wide state.
type Context struct {
	// State is the invoking session's state. Mutations are persisted by
	// the runner after the turn completes.
	State session.State

	// SessionID and UserID identify the invoking session, for logging.
	SessionID string
	UserID    string
}

// Result represents the result of a tool execution. Content is a JSON
// payload the model can cite. IsError marks infrastructure faults
// (malformed arguments, upstream API failures); domain-level validation
// failures such as an out-of-range reminder index are ordinary results
// whose payload carries a status field.
type Result struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// Tool defines the interface for action handlers callable by an agent.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a description of what the tool does.
	Description() string

	// Parameters returns the JSON Schema for the tool's parameters.
	Parameters() json.RawMessage

	// Execute runs the tool with the given arguments and returns the result.
	Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error)
}

// jsonResult marshals a payload into a successful Result.
func jsonResult(payload any) Result {
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{
			Content: fmt.Sprintf("failed to encode tool result: %v", err),
			IsError: true,
		}
	}
	return Result{Content: string(data)}
}

// errorResult builds a Result for an infrastructure fault.
func errorResult(format string, args ...any) Result {
	return Result{
		Content: fmt.Sprintf(format, args...),
		IsError: true,
	}
}

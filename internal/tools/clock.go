package tools

import (
	"context"
	"encoding/json"
	"time"
)

// CurrentTimeTool reports the current system time. Stateless.
type CurrentTimeTool struct {
	// now is swappable in tests.
	now func() time.Time
}

// NewCurrentTimeTool creates the current-time tool.
func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{now: time.Now}
}

func (t *CurrentTimeTool) Name() string {
	return "get_current_time"
}

func (t *CurrentTimeTool) Description() string {
	return "Get the current date and time in YYYY-MM-DD HH:MM:SS format."
}

func (t *CurrentTimeTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *CurrentTimeTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	return jsonResult(map[string]any{
		"current_time": t.now().Format("2006-01-02 15:04:05"),
	}), nil
}

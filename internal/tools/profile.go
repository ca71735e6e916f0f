package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/pkg/log"
)

// UpdateUserNameTool overwrites the "user_name" state entry and reports
// both the old and the new value. Any string is accepted; the prior
// value defaults to the empty string.
type UpdateUserNameTool struct{}

type updateUserNameArgs struct {
	Name string `json:"name"`
}

func (t *UpdateUserNameTool) Name() string {
	return "update_user_name"
}

func (t *UpdateUserNameTool) Description() string {
	return "Store or update the user's name so they can be addressed personally across conversations."
}

func (t *UpdateUserNameTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"name": {
				"type": "string",
				"description": "The new name for the user"
			}
		},
		"required": ["name"]
	}`)
}

func (t *UpdateUserNameTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a updateUserNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse update_user_name arguments: %v", err), nil
	}

	oldName := session.UserName(tc.State)
	session.SetUserName(tc.State, a.Name)

	log.Debug("update_user_name: %q -> %q", oldName, a.Name)

	return jsonResult(map[string]any{
		"action":   "update_user_name",
		"old_name": oldName,
		"new_name": a.Name,
		"message":  fmt.Sprintf("Updated your name to: %s", a.Name),
	}), nil
}

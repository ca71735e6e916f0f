package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/pkg/log"
)

// The reminder handlers operate on the "reminders" state entry, an
// ordered list of strings. Positions exposed to the model and the user
// are 1-based; index 1 is the first element.

// AddReminderTool appends a reminder to the session's list.
type AddReminderTool struct{}

type addReminderArgs struct {
	Reminder string `json:"reminder"`
}

func (t *AddReminderTool) Name() string {
	return "add_reminder"
}

func (t *AddReminderTool) Description() string {
	return "Add a new reminder to the user's reminder list. Pass only the task itself, without phrases like 'remind me to'."
}

func (t *AddReminderTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"reminder": {
				"type": "string",
				"description": "The reminder text to add to the user's list"
			}
		},
		"required": ["reminder"]
	}`)
}

func (t *AddReminderTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a addReminderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse add_reminder arguments: %v", err), nil
	}

	reminders := session.Reminders(tc.State)
	reminders = append(reminders, a.Reminder)
	session.SetReminders(tc.State, reminders)

	log.Debug("add_reminder: %q (now %d reminders)", a.Reminder, len(reminders))

	return jsonResult(map[string]any{
		"action":   "add_reminder",
		"reminder": a.Reminder,
		"message":  fmt.Sprintf("Added reminder: %s", a.Reminder),
	}), nil
}

// ViewRemindersTool returns the reminder list verbatim plus its length.
// It never mutates state.
type ViewRemindersTool struct{}

func (t *ViewRemindersTool) Name() string {
	return "view_reminders"
}

func (t *ViewRemindersTool) Description() string {
	return "View all current reminders in the user's list."
}

func (t *ViewRemindersTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *ViewRemindersTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	reminders := session.Reminders(tc.State)

	return jsonResult(map[string]any{
		"action":    "view_reminders",
		"reminders": reminders,
		"count":     len(reminders),
	}), nil
}

// UpdateReminderTool replaces the reminder at a 1-based position. An
// out-of-range position is reported as a structured failure and leaves
// the list unchanged. Updating a reminder to its current text is a
// no-op success.
type UpdateReminderTool struct{}

type updateReminderArgs struct {
	Index       int    `json:"index"`
	UpdatedText string `json:"updated_text"`
}

func (t *UpdateReminderTool) Name() string {
	return "update_reminder"
}

func (t *UpdateReminderTool) Description() string {
	return "Update an existing reminder by its 1-based position in the list."
}

func (t *UpdateReminderTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"index": {
				"type": "integer",
				"description": "The 1-based position of the reminder to update"
			},
			"updated_text": {
				"type": "string",
				"description": "The new text for the reminder"
			}
		},
		"required": ["index", "updated_text"]
	}`)
}

func (t *UpdateReminderTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a updateReminderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse update_reminder arguments: %v", err), nil
	}

	reminders := session.Reminders(tc.State)
	if a.Index < 1 || a.Index > len(reminders) {
		return jsonResult(map[string]any{
			"action":  "update_reminder",
			"status":  "error",
			"message": outOfRangeMessage(a.Index, len(reminders)),
		}), nil
	}

	oldText := reminders[a.Index-1]
	reminders[a.Index-1] = a.UpdatedText
	session.SetReminders(tc.State, reminders)

	log.Debug("update_reminder: %d %q -> %q", a.Index, oldText, a.UpdatedText)

	return jsonResult(map[string]any{
		"action":       "update_reminder",
		"index":        a.Index,
		"old_text":     oldText,
		"updated_text": a.UpdatedText,
		"message":      fmt.Sprintf("Updated reminder %d from '%s' to '%s'", a.Index, oldText, a.UpdatedText),
	}), nil
}

// DeleteReminderTool removes the reminder at a 1-based position, with
// the same bounds contract as update.
type DeleteReminderTool struct{}

type deleteReminderArgs struct {
	Index int `json:"index"`
}

func (t *DeleteReminderTool) Name() string {
	return "delete_reminder"
}

func (t *DeleteReminderTool) Description() string {
	return "Delete a reminder by its 1-based position in the list."
}

func (t *DeleteReminderTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"index": {
				"type": "integer",
				"description": "The 1-based position of the reminder to delete"
			}
		},
		"required": ["index"]
	}`)
}

func (t *DeleteReminderTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a deleteReminderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse delete_reminder arguments: %v", err), nil
	}

	reminders := session.Reminders(tc.State)
	if a.Index < 1 || a.Index > len(reminders) {
		return jsonResult(map[string]any{
			"action":  "delete_reminder",
			"status":  "error",
			"message": outOfRangeMessage(a.Index, len(reminders)),
		}), nil
	}

	deleted := reminders[a.Index-1]
	reminders = append(reminders[:a.Index-1], reminders[a.Index:]...)
	session.SetReminders(tc.State, reminders)

	log.Debug("delete_reminder: %d %q (now %d reminders)", a.Index, deleted, len(reminders))

	return jsonResult(map[string]any{
		"action":           "delete_reminder",
		"index":            a.Index,
		"deleted_reminder": deleted,
		"message":          fmt.Sprintf("Deleted reminder %d: '%s'", a.Index, deleted),
	}), nil
}

func outOfRangeMessage(index, length int) string {
	return fmt.Sprintf("Could not find reminder at position %d. Currently there are %d reminders.", index, length)
}

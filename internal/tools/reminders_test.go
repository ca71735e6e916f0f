package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/remora-ai/remora/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, res Result) map[string]any {
	t.Helper()
	require.False(t, res.IsError, "unexpected tool error: %s", res.Content)
	payload := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(res.Content), &payload))
	return payload
}

func newToolContext(reminders ...string) *Context {
	state := session.State{}
	if len(reminders) > 0 {
		session.SetReminders(state, reminders)
	}
	return &Context{State: state, SessionID: "sess-1", UserID: "user-1"}
}

func TestAddReminder_AppendsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a", "b")
	tool := &AddReminderTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"reminder":"c"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "add_reminder", payload["action"])
	assert.Equal(t, "c", payload["reminder"])

	got := session.Reminders(tc.State)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestAddReminder_EmptyStateDefaultsToEmptyList(t *testing.T) {
	t.Parallel()

	tc := newToolContext()
	tool := &AddReminderTool{}

	_, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"reminder":"buy milk"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"buy milk"}, session.Reminders(tc.State))
}

func TestViewReminders_ReturnsListAndCount(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a", "b")
	tool := &ViewRemindersTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "view_reminders", payload["action"])
	assert.Equal(t, float64(2), payload["count"])
	assert.Equal(t, []any{"a", "b"}, payload["reminders"])

	// No mutation.
	assert.Equal(t, []string{"a", "b"}, session.Reminders(tc.State))
}

func TestUpdateReminder_ValidIndex(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a", "b", "c")
	tool := &UpdateReminderTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"index":2,"updated_text":"B"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "update_reminder", payload["action"])
	assert.Equal(t, "b", payload["old_text"])
	assert.Equal(t, "B", payload["updated_text"])

	// Target updated, all other elements unchanged.
	assert.Equal(t, []string{"a", "B", "c"}, session.Reminders(tc.State))
}

func TestUpdateReminder_OutOfRangeLeavesListUnchanged(t *testing.T) {
	t.Parallel()

	tool := &UpdateReminderTool{}

	for _, index := range []int{0, -1, 4} {
		tc := newToolContext("a", "b", "c")
		args, _ := json.Marshal(map[string]any{"index": index, "updated_text": "X"})

		res, err := tool.Execute(context.Background(), tc, args)
		require.NoError(t, err)

		payload := decodePayload(t, res)
		assert.Equal(t, "error", payload["status"], "index %d should be rejected", index)
		assert.Equal(t, []string{"a", "b", "c"}, session.Reminders(tc.State))
	}
}

func TestUpdateReminder_EmptyList(t *testing.T) {
	t.Parallel()

	tc := newToolContext()
	tool := &UpdateReminderTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"index":1,"updated_text":"X"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "error", payload["status"])
	assert.Empty(t, session.Reminders(tc.State))
}

func TestUpdateReminder_SameTextIsNoOpSuccess(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a")
	tool := &UpdateReminderTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"index":1,"updated_text":"a"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "update_reminder", payload["action"])
	assert.NotContains(t, payload, "status")
	assert.Equal(t, []string{"a"}, session.Reminders(tc.State))
}

func TestDeleteReminder_First(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a", "b", "c")
	tool := &DeleteReminderTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"index":1}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "delete_reminder", payload["action"])
	assert.Equal(t, "a", payload["deleted_reminder"])
	assert.Equal(t, []string{"b", "c"}, session.Reminders(tc.State))
}

func TestDeleteReminder_OutOfRangeLeavesListUnchanged(t *testing.T) {
	t.Parallel()

	tool := &DeleteReminderTool{}

	for _, index := range []int{0, 4} {
		tc := newToolContext("a", "b", "c")
		args, _ := json.Marshal(map[string]any{"index": index})

		res, err := tool.Execute(context.Background(), tc, args)
		require.NoError(t, err)

		payload := decodePayload(t, res)
		assert.Equal(t, "error", payload["status"], "index %d should be rejected", index)
		assert.Equal(t, []string{"a", "b", "c"}, session.Reminders(tc.State))
	}
}

func TestReminders_MalformedArguments(t *testing.T) {
	t.Parallel()

	tc := newToolContext("a")
	for _, tool := range []Tool{&AddReminderTool{}, &UpdateReminderTool{}, &DeleteReminderTool{}} {
		res, err := tool.Execute(context.Background(), tc, json.RawMessage(`not json`))
		require.NoError(t, err, tool.Name())
		assert.True(t, res.IsError, tool.Name())
	}
}

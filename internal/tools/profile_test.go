package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/remora-ai/remora/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserName_FirstSetReportsEmptyOldName(t *testing.T) {
	t.Parallel()

	tc := newToolContext()
	tool := &UpdateUserNameTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"name":"John"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "update_user_name", payload["action"])
	assert.Equal(t, "", payload["old_name"])
	assert.Equal(t, "John", payload["new_name"])
	assert.Equal(t, "John", session.UserName(tc.State))
}

func TestUpdateUserName_OverwriteReportsPreviousName(t *testing.T) {
	t.Parallel()

	tc := newToolContext()
	session.SetUserName(tc.State, "John")
	tool := &UpdateUserNameTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{"name":"Jane"}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "John", payload["old_name"])
	assert.Equal(t, "Jane", payload["new_name"])
	assert.Equal(t, "Jane", session.UserName(tc.State))
}

func TestUpdateUserName_MalformedArguments(t *testing.T) {
	t.Parallel()

	tc := newToolContext()
	tool := &UpdateUserNameTool{}

	res, err := tool.Execute(context.Background(), tc, json.RawMessage(`{`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "", session.UserName(tc.State))
}

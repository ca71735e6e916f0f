package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeTool(t *testing.T) {
	t.Parallel()

	tool := NewCurrentTimeTool()
	tool.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	res, err := tool.Execute(context.Background(), newToolContext(), json.RawMessage(`{}`))
	require.NoError(t, err)

	payload := decodePayload(t, res)
	assert.Equal(t, "2025-03-14 09:26:53", payload["current_time"])
}

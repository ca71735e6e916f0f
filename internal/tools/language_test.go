package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguageTool(t *testing.T) {
	t.Parallel()

	tool := &DetectLanguageTool{}

	cases := []struct {
		text string
		code string
	}{
		{"Hello there, how are you doing today? I hope everything is fine.", "en"},
		{"Hola, ¿cómo estás? Espero que todo vaya muy bien hoy contigo.", "es"},
	}

	for _, tc := range cases {
		args, _ := json.Marshal(map[string]string{"text": tc.text})

		res, err := tool.Execute(context.Background(), newToolContext(), args)
		require.NoError(t, err)

		payload := decodePayload(t, res)
		assert.Equal(t, tc.code, payload["code"], "text %q", tc.text)
		assert.NotEmpty(t, payload["language"])
	}
}

func TestDetectLanguageTool_MalformedArguments(t *testing.T) {
	t.Parallel()

	tool := &DetectLanguageTool{}
	res, err := tool.Execute(context.Background(), newToolContext(), json.RawMessage(`nope`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

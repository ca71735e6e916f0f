package tools

import (
	"context"
	"encoding/json"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DetectLanguageTool guesses the natural language of a text snippet so
// an agent can answer the user in their own language.
type DetectLanguageTool struct{}

type detectLanguageArgs struct {
	Text string `json:"text"`
}

func (t *DetectLanguageTool) Name() string {
	return "detect_language"
}

func (t *DetectLanguageTool) Description() string {
	return "Detect the natural language of a piece of text, e.g. to greet the user in their own language."
}

func (t *DetectLanguageTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"text": {
				"type": "string",
				"description": "The text whose language should be detected"
			}
		},
		"required": ["text"]
	}`)
}

func (t *DetectLanguageTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a detectLanguageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse detect_language arguments: %v", err), nil
	}

	info := whatlanggo.Detect(a.Text)
	code := info.Lang.Iso6391()
	name := info.Lang.String()

	// Prefer the canonical English display name when the ISO code parses.
	if tag, err := language.Parse(code); err == nil {
		name = display.English.Languages().Name(tag)
	}

	return jsonResult(map[string]any{
		"action":     "detect_language",
		"language":   name,
		"code":       code,
		"confidence": info.Confidence,
		"reliable":   info.IsReliable(),
	}), nil
}

package tools

import (
	"context"
	"encoding/json"
	"strings"
)

// nerdJokes is keyed by topic; "default" is the fallback.
var nerdJokes = map[string]string{
	"python":      "Why don't Python programmers like to use inheritance? Because they don't like to inherit anything!",
	"javascript":  "Why did the JavaScript developer go broke? Because he used up all his cache!",
	"java":        "Why do Java developers wear glasses? Because they can't C#!",
	"programming": "Why do programmers prefer dark mode? Because light attracts bugs!",
	"math":        "Why was the equal sign so humble? Because he knew he wasn't less than or greater than anyone else!",
	"physics":     "Why did the photon check a hotel? Because it was travelling light!",
	"chemistry":   "Why did the acid go to the gym? To become a buffer solution!",
	"biology":     "Why did the cell go to therapy? Because it had too many issues!",
	"default":     "Why did the computer go to the doctor? Because it had a virus!",
}

// NerdJokeTool serves a canned joke for a topic and remembers the last
// topic in session state for conversation continuity.
type NerdJokeTool struct{}

type nerdJokeArgs struct {
	Topic string `json:"topic"`
}

func (t *NerdJokeTool) Name() string {
	return "get_nerd_joke"
}

func (t *NerdJokeTool) Description() string {
	return "Get a nerdy joke about a specific topic such as python, math or physics."
}

func (t *NerdJokeTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"topic": {
				"type": "string",
				"description": "The topic for the joke, e.g. 'python', 'math', 'physics'"
			}
		},
		"required": ["topic"]
	}`)
}

func (t *NerdJokeTool) Execute(ctx context.Context, tc *Context, args json.RawMessage) (Result, error) {
	var a nerdJokeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("failed to parse get_nerd_joke arguments: %v", err), nil
	}

	joke, ok := nerdJokes[strings.ToLower(a.Topic)]
	if !ok {
		joke = nerdJokes["default"]
	}

	tc.State.Set("last_joke_topic", a.Topic)

	return jsonResult(map[string]any{
		"status": "success",
		"joke":   joke,
		"topic":  a.Topic,
	}), nil
}

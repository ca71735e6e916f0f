// Package agents holds the built-in agent definitions. Each definition
// is pure data plus tool wiring; the runner in internal/agent executes
// them.
package agents

import (
	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/tools"
)

// Greeting builds the introductory agent: it asks for the user's name
// and greets them with it. The language detector lets it answer users
// who introduce themselves in another language.
func Greeting() *agent.Agent {
	return &agent.Agent{
		Name:        "greeting_agent",
		Description: "Greeting agent",
		Instruction: `You are a helpful assistant that greets the user.
Ask for the user's name and greet them by name.
If the user writes in a language other than English, use the detect_language tool
and greet them in that language.`,
		Tools: []tools.Tool{
			&tools.DetectLanguageTool{},
		},
	}
}

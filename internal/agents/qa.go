package agents

import (
	"github.com/remora-ai/remora/internal/agent"
)

// QuestionAnswering builds the stateful Q&A agent. Its instruction is a
// template over session state, so the same definition serves every user.
func QuestionAnswering() *agent.Agent {
	return &agent.Agent{
		Name:        "question_answering_agent",
		Description: "Question answering agent",
		Instruction: `You are a helpful assistant that answers questions about the user's preferences.

Here is some information about the user:
Name:
{user_name}
Preferences:
{user_preferences}`,
	}
}

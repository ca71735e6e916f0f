package agents

import (
	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/tools"
)

// Manager builds the coordinating agent. Specialized agents are
// wrapped as tools so the manager can delegate to them; their state
// writes land in the caller's session.
func Manager(client agent.ChatClient, search tools.Tool) (*agent.Agent, error) {
	newsTool, err := agent.NewAgentTool(NewsAnalyst(search), client)
	if err != nil {
		return nil, err
	}
	funnyTool, err := agent.NewAgentTool(FunnyNerd(), client)
	if err != nil {
		return nil, err
	}
	memoryTool, err := agent.NewAgentTool(Memory(), client)
	if err != nil {
		return nil, err
	}

	return &agent.Agent{
		Name:        "manager",
		Description: "Manager agent that coordinates and delegates tasks to specialized sub-agents",
		Instruction: `You are a manager agent that is responsible for overseeing the work of the other agents.

Always delegate the task to the appropriate agent. Use your best judgement
to determine which agent to delegate to.

You are responsible for delegating tasks to the following agents:
- news_analyst
- funny_nerd
- memory_agent

You also have access to the following tools:
- get_current_time`,
		Tools: []tools.Tool{
			newsTool,
			funnyTool,
			memoryTool,
			tools.NewCurrentTimeTool(),
		},
	}, nil
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/remora-ai/remora/internal/tools"
)

// AgentTool exposes an agent as a tool so a coordinating agent can
// delegate a sub-task to it. The wrapped agent runs against the
// caller's session state, so anything it writes there is visible to
// the coordinator after the call returns.
type AgentTool struct {
	agent  *Agent
	client ChatClient
}

type agentToolArgs struct {
	Request string `json:"request"`
}

// NewAgentTool wraps an agent for delegation through the given model
// client.
func NewAgentTool(ag *Agent, client ChatClient) (*AgentTool, error) {
	if err := ag.Validate(); err != nil {
		return nil, err
	}
	return &AgentTool{agent: ag, client: client}, nil
}

func (t *AgentTool) Name() string {
	return t.agent.Name
}

func (t *AgentTool) Description() string {
	return t.agent.Description
}

func (t *AgentTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"request": {
				"type": "string",
				"description": "The task or question to hand to this agent, in natural language"
			}
		},
		"required": ["request"]
	}`)
}

func (t *AgentTool) Execute(ctx context.Context, tc *tools.Context, args json.RawMessage) (tools.Result, error) {
	var a agentToolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return tools.Result{
			Content: fmt.Sprintf("failed to parse %s arguments: %v", t.agent.Name, err),
			IsError: true,
		}, nil
	}

	result, err := runLoop(ctx, t.client, t.agent, tc, a.Request)
	if err != nil {
		return tools.Result{
			Content: fmt.Sprintf("delegated agent %s failed: %v", t.agent.Name, err),
			IsError: true,
		}, nil
	}

	return tools.Result{Content: result.Content}, nil
}

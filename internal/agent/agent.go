package agent

import (
	"encoding/json"
	"fmt"

	"github.com/remora-ai/remora/internal/tools"
)

const defaultMaxIterations = 10

// Agent is a declarative description of a single model-backed agent:
// who it is, what it may do, and how it should behave. Agents are
// immutable after construction and safe to share across sessions; all
// per-conversation state lives in the session.
type Agent struct {
	// Name uniquely identifies the agent, e.g. "memory_agent".
	Name string

	// Model overrides the client's default model when non-empty.
	Model string

	// Description is a one-line summary shown to coordinating agents
	// when this agent is exposed as a delegation target.
	Description string

	// Instruction is the system prompt template. Placeholders of the
	// form {key} are resolved against session state before each run.
	Instruction string

	// Tools are the action handlers the agent may invoke.
	Tools []tools.Tool

	// OutputSchema, when set, forces the model to answer with a JSON
	// document matching the schema. Schema-constrained agents cannot
	// also carry tools.
	OutputSchema json.RawMessage

	// OutputSchemaName labels the schema on the wire. Required when
	// OutputSchema is set.
	OutputSchemaName string

	// MaxIterations bounds the tool-calling loop. Zero means the
	// default of 10.
	MaxIterations int
}

// Validate checks the agent definition for contradictions before it is
// handed to a runner.
func (a *Agent) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("agent must have a name")
	}
	if len(a.OutputSchema) > 0 {
		if len(a.Tools) > 0 {
			return fmt.Errorf("agent %q sets an output schema and tools; structured-output agents cannot call tools", a.Name)
		}
		if a.OutputSchemaName == "" {
			return fmt.Errorf("agent %q sets an output schema without a schema name", a.Name)
		}
	}
	return nil
}

func (a *Agent) maxIterations() int {
	if a.MaxIterations > 0 {
		return a.MaxIterations
	}
	return defaultMaxIterations
}

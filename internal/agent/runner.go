package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/remora-ai/remora/internal/llm"
	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/internal/tools"
	"github.com/remora-ai/remora/pkg/log"
)

// ChatClient is the slice of the model client the runner needs. It is
// satisfied by *llm.Client and by test fakes.
type ChatClient interface {
	Model() string
	ChatCompletion(ctx context.Context, messages []llm.Message, opts *llm.ChatCompletionOptions) (*llm.ChatResponse, error)
	ChatCompletionWithTools(ctx context.Context, messages []llm.Message, toolDefs []llm.ToolDefinition, opts *llm.ChatCompletionOptions) (*llm.ChatResponse, error)
}

// RunResult is the outcome of a single conversational turn.
type RunResult struct {
	// Content is the agent's final text response.
	Content string

	// ToolCalls records every tool invocation made during the turn,
	// in execution order.
	ToolCalls []session.ToolCallRecord

	// Iterations is the number of model calls made.
	Iterations int
}

// Runner drives an agent over persisted sessions. Each turn loads the
// session, runs the tool-calling loop against its state, then persists
// the updated state and the turn's events. Turns on the same session
// are serialized through the lock manager so concurrent callers never
// interleave state writes.
type Runner struct {
	client  ChatClient
	service session.Service
	locks   *session.LockManager
}

// NewRunner creates a runner over the given model client and session
// backend.
func NewRunner(client ChatClient, service session.Service) *Runner {
	return &Runner{
		client:  client,
		service: service,
		locks:   session.NewLockManager(),
	}
}

// Run executes one turn of the agent against the identified session.
func (r *Runner) Run(ctx context.Context, ag *Agent, appName, userID, sessionID, userMessage string) (*RunResult, error) {
	if err := ag.Validate(); err != nil {
		return nil, err
	}

	var result *RunResult
	err := r.locks.WithLock(sessionID, func() error {
		sess, err := r.service.Get(ctx, appName, userID, sessionID)
		if err != nil {
			return fmt.Errorf("load session %s: %w", sessionID, err)
		}

		tc := &tools.Context{
			State:     sess.State,
			SessionID: sess.ID,
			UserID:    userID,
		}

		result, err = runLoop(ctx, r.client, ag, tc, userMessage)
		if err != nil {
			return err
		}

		sess.State = tc.State
		if err := r.service.Save(ctx, sess); err != nil {
			return fmt.Errorf("save session %s: %w", sessionID, err)
		}

		now := time.Now().UTC()
		events := []session.Event{
			{
				ID:        uuid.NewString(),
				Author:    "user",
				Content:   userMessage,
				Timestamp: now,
			},
			{
				ID:        uuid.NewString(),
				Author:    ag.Name,
				Content:   result.Content,
				ToolCalls: result.ToolCalls,
				Timestamp: now,
			},
		}
		for _, event := range events {
			if err := r.service.AppendEvent(ctx, sess, event); err != nil {
				return fmt.Errorf("append event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// runLoop is the tool-calling loop shared by the runner and by agents
// exposed as tools. It mutates tc.State in place; the caller decides
// whether and how those mutations are persisted.
func runLoop(ctx context.Context, client ChatClient, ag *Agent, tc *tools.Context, userMessage string) (*RunResult, error) {
	registry, err := tools.NewRegistry(ag.Tools...)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", ag.Name, err)
	}

	result := &RunResult{
		ToolCalls: make([]session.ToolCallRecord, 0),
	}

	messages := []llm.Message{
		{Role: "user", Content: userMessage},
	}
	toolDefs := registry.Definitions()

	opts := llm.NewChatCompletionOptions().
		WithSystemPrompt(RenderInstruction(ag.Instruction, tc.State))
	if len(ag.OutputSchema) > 0 {
		opts = opts.WithJSONSchema(ag.OutputSchemaName, ag.OutputSchema)
	}

	maxIterations := ag.maxIterations()
	for i := 0; i < maxIterations; i++ {
		result.Iterations++

		var resp *llm.ChatResponse
		if len(toolDefs) > 0 {
			resp, err = client.ChatCompletionWithTools(ctx, messages, toolDefs, opts)
		} else {
			resp, err = client.ChatCompletion(ctx, messages, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("agent %s: model call failed at iteration %d: %w", ag.Name, i+1, err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("agent %s: no choices in response at iteration %d", ag.Name, i+1)
		}

		choice := resp.Choices[0]
		assistantMsg := choice.Message

		switch choice.FinishReason {
		case "tool_calls":
			if len(assistantMsg.ToolCalls) == 0 {
				result.Content = assistantMsg.Content
				return result, nil
			}

			messages = append(messages, assistantMsg)

			for _, toolCall := range assistantMsg.ToolCalls {
				record := executeTool(ctx, registry, tc, toolCall)
				result.ToolCalls = append(result.ToolCalls, record)

				messages = append(messages, llm.Message{
					Role:       "tool",
					Content:    record.Result,
					ToolCallID: toolCall.ID,
				})

				log.Info("agent %s: tool %s executed, error=%v", ag.Name, toolCall.Function.Name, record.IsError)
			}

			// The system prompt is already in the conversation; the
			// state it rendered may be stale after tool execution, so
			// re-render on the next call.
			opts = llm.NewChatCompletionOptions().
				WithSystemPrompt(RenderInstruction(ag.Instruction, tc.State))

		default:
			// "stop" or anything unrecognized: the content is final.
			result.Content = assistantMsg.Content
			return result, nil
		}
	}

	return nil, fmt.Errorf("agent %s: max iterations (%d) reached without completion", ag.Name, maxIterations)
}

func executeTool(ctx context.Context, registry *tools.Registry, tc *tools.Context, toolCall llm.ToolCall) session.ToolCallRecord {
	record := session.ToolCallRecord{
		ToolName:  toolCall.Function.Name,
		Arguments: toolCall.Function.Arguments,
	}

	tool, exists := registry.Get(toolCall.Function.Name)
	if !exists {
		record.Result = fmt.Sprintf("Tool %q not found", toolCall.Function.Name)
		record.IsError = true
		return record
	}

	result, err := tool.Execute(ctx, tc, json.RawMessage(toolCall.Function.Arguments))
	if err != nil {
		record.Result = fmt.Sprintf("Tool execution error: %v", err)
		record.IsError = true
		return record
	}

	record.Result = result.Content
	record.IsError = result.IsError
	return record
}

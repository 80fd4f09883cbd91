// Package assistant implements the bounded tool-use loop behind the chat
// surface: call the model, interpret the output as an answer or a tool
// invocation, execute the tool, feed the result back, repeat.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/tools"
)

// maxIterations bounds cost and latency against a model that loops on
// self-referential tool calls.
const maxIterations = 3

// stuckMessage is returned when the iteration budget is exhausted without
// reaching a terminal state. Deliberate policy, not an error.
const stuckMessage = "I'm sorry, I got stuck in a loop trying to answer that."

// defaultAck is returned after an action tool that carried no user message.
const defaultAck = "Done!"

// ToolExecutor runs a named tool. Satisfied by *tools.Registry.
type ToolExecutor interface {
	Execute(ctx context.Context, tool string, params map[string]string) tools.Result
}

// Agent owns one chat exchange at a time. It holds no per-exchange state;
// the conversation passed to Run is exclusively owned by that call.
type Agent struct {
	completer llm.Completer
	executor  ToolExecutor
	logger    *slog.Logger
}

// New creates an agent from its injected collaborators.
func New(completer llm.Completer, executor ToolExecutor, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		completer: completer,
		executor:  executor,
		logger:    logger,
	}
}

// Run answers one user message, executing at most maxIterations completion
// calls. Completion-service failures propagate and abort the exchange;
// tool failures re-enter the loop as data so the model can recover.
func (a *Agent) Run(ctx context.Context, userMessage, systemContext string, history llm.Conversation) (string, error) {
	conv := buildConversation(systemContext, history, userMessage)

	for iteration := 1; iteration <= maxIterations; iteration++ {
		a.logger.Debug("agent loop iteration", "iteration", iteration, "turns", len(conv))

		responseText, err := a.completer.Complete(ctx, conv)
		if err != nil {
			return "", fmt.Errorf("completion: %w", err)
		}

		inv, rawJSON, ok := parseInvocation(responseText)
		if !ok {
			// Plain answer; the permissive default.
			return responseText, nil
		}

		result := a.executor.Execute(ctx, inv.Tool, inv.Params)
		if !result.IsData() {
			a.logger.Info("agent action completed", "tool", inv.Tool)
			if inv.UserMessage != "" {
				return inv.UserMessage, nil
			}
			return defaultAck, nil
		}

		// Replay the tool call and its output, then go around again.
		a.logger.Debug("feeding tool data back", "tool", inv.Tool)
		conv = conv.Append(llm.RoleModel, rawJSON)
		conv = conv.Append(llm.RoleUser, "Tool Output: "+result.Payload)
	}

	a.logger.Warn("agent iteration budget exhausted")
	return stuckMessage, nil
}

package assistant

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// scriptedCompleter returns canned responses in order and records every
// conversation it was called with.
type scriptedCompleter struct {
	responses     []string
	err           error
	calls         int
	conversations []llm.Conversation
}

func (s *scriptedCompleter) Complete(_ context.Context, conv llm.Conversation) (string, error) {
	s.calls++
	copied := make(llm.Conversation, len(conv))
	copy(copied, conv)
	s.conversations = append(s.conversations, copied)
	if s.err != nil {
		return "", s.err
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

func (s *scriptedCompleter) CompletePrompt(ctx context.Context, prompt string) (string, error) {
	return s.Complete(ctx, llm.Conversation{}.Append(llm.RoleUser, prompt))
}

// scriptedExecutor records invocations and returns canned results in order.
type scriptedExecutor struct {
	results []tools.Result
	tools   []string
	params  []map[string]string
}

func (s *scriptedExecutor) Execute(_ context.Context, tool string, params map[string]string) tools.Result {
	s.tools = append(s.tools, tool)
	s.params = append(s.params, params)
	result := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return result
}

func TestRunPlainTextAnswer(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"The pizza place opens at noon."}}
	executor := &scriptedExecutor{}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "When does it open?", "You are a helpful assistant.", nil)
	require.NoError(t, err)
	assert.Equal(t, "The pizza place opens at noon.", answer)
	assert.Equal(t, 1, completer.calls, "plain text must terminate after one call")
	assert.Empty(t, executor.tools, "no tool may run for a plain answer")
}

func TestRunPreambleMaterializedOnce(t *testing.T) {
	history := llm.Conversation{}.
		Append(llm.RoleUser, "earlier question").
		Append(llm.RoleModel, "earlier answer")

	completer := &scriptedCompleter{responses: []string{"ok"}}
	agent := New(completer, &scriptedExecutor{}, testLogger())

	_, err := agent.Run(context.Background(), "next question", "site context", history)
	require.NoError(t, err)

	conv := completer.conversations[0]
	require.Len(t, conv, 5)
	assert.Equal(t, llm.RoleUser, conv[0].Role)
	assert.Contains(t, conv[0].Text, "site context")
	assert.Contains(t, conv[0].Text, "findBusiness")
	assert.Equal(t, llm.RoleModel, conv[1].Role)
	assert.Equal(t, "earlier question", conv[2].Text)
	assert.Equal(t, "earlier answer", conv[3].Text)
	assert.Equal(t, "next question", conv[4].Text)

	// The preamble must appear exactly once.
	occurrences := 0
	for _, turn := range conv {
		if strings.Contains(turn.Text, "Available Tools:") {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestRunActionToolTerminates(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"setTheme","params":{"theme":"dark"}}`,
	}}
	executor := &scriptedExecutor{results: []tools.Result{tools.Action()}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "dark mode please", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Done!", answer)
	assert.Equal(t, 1, completer.calls, "action tools must not trigger a second completion")
	require.Equal(t, []string{"setTheme"}, executor.tools)
	assert.Equal(t, "dark", executor.params[0]["theme"])
}

func TestRunActionToolUserMessage(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"navigate","params":{"url":"search.html"},"response":"Taking you to search!"}`,
	}}
	executor := &scriptedExecutor{results: []tools.Result{tools.Action()}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "go to search", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Taking you to search!", answer)
}

func TestRunDataToolFeedsBack(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"findBusiness","params":{"query":"pizza"}}`,
		"I couldn't find any pizza places, sorry.",
	}}
	executor := &scriptedExecutor{results: []tools.Result{
		tools.Data("No businesses found matching that query."),
	}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "find pizza", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find any pizza places, sorry.", answer)
	assert.Equal(t, 2, completer.calls)

	// The second call must carry the tool call and its output.
	second := completer.conversations[1]
	require.GreaterOrEqual(t, len(second), 2)
	toolTurn := second[len(second)-2]
	outputTurn := second[len(second)-1]
	assert.Equal(t, llm.RoleModel, toolTurn.Role)
	assert.Contains(t, toolTurn.Text, `"findBusiness"`)
	assert.Equal(t, llm.RoleUser, outputTurn.Role)
	assert.Equal(t, "Tool Output: No businesses found matching that query.", outputTurn.Text)
}

func TestRunIterationBudget(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"findBusiness","params":{"query":"a"}}`,
	}}
	executor := &scriptedExecutor{results: []tools.Result{tools.Data("Found businesses: []")}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "loop forever", "", nil)
	require.NoError(t, err, "budget exhaustion is a policy, never an error")
	assert.Equal(t, stuckMessage, answer)
	assert.Equal(t, 3, completer.calls, "exactly three completion calls, never a fourth")
}

func TestRunCompletionFailureAborts(t *testing.T) {
	completer := &scriptedCompleter{err: llm.ErrRateLimited}
	agent := New(completer, &scriptedExecutor{}, testLogger())

	_, err := agent.Run(context.Background(), "hi", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Equal(t, 1, completer.calls)
}

func TestRunToolFailureReentersLoop(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"findBusiness","params":{"query":"pizza"}}`,
		"The directory is having trouble right now.",
	}}
	executor := &scriptedExecutor{results: []tools.Result{
		tools.Data("Error searching: connection lost"),
	}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "find pizza", "", nil)
	require.NoError(t, err, "tool failures must not abort the loop")
	assert.Equal(t, "The directory is having trouble right now.", answer)
}

func TestRunUnknownToolReportedBack(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"tool":"teleport","params":{}}`,
		"I don't have a teleport tool, but I can navigate.",
	}}
	executor := &scriptedExecutor{results: []tools.Result{tools.Data("Unknown tool")}}
	agent := New(completer, executor, testLogger())

	answer, err := agent.Run(context.Background(), "teleport me", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "I don't have a teleport tool, but I can navigate.", answer)
	second := completer.conversations[1]
	assert.Equal(t, "Tool Output: Unknown tool", second[len(second)-1].Text)
}

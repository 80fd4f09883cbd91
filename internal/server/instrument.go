package server

import (
	"context"
	"time"

	"github.com/bizhubhq/bizhub/internal/assistant"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/tools"
)

// timedCompleter records completion-call timings.
type timedCompleter struct {
	inner     llm.Completer
	collector *metrics.Collector
}

func (t *timedCompleter) Complete(ctx context.Context, conv llm.Conversation) (string, error) {
	start := time.Now()
	text, err := t.inner.Complete(ctx, conv)
	t.collector.RecordTiming(metrics.OpCompletion, time.Since(start))
	return text, err
}

func (t *timedCompleter) CompletePrompt(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := t.inner.CompletePrompt(ctx, prompt)
	t.collector.RecordTiming(metrics.OpCompletion, time.Since(start))
	return text, err
}

// timedExecutor records tool-execution timings.
type timedExecutor struct {
	inner     assistant.ToolExecutor
	collector *metrics.Collector
}

func (t *timedExecutor) Execute(ctx context.Context, tool string, params map[string]string) tools.Result {
	start := time.Now()
	result := t.inner.Execute(ctx, tool, params)
	t.collector.RecordTiming(metrics.OpToolExecution, time.Since(start))
	return result
}

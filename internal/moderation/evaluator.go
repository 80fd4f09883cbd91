// Package moderation screens listing submissions for quality and policy
// compliance before publication.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/bizhubhq/bizhub/internal/llm"
)

// Verdict is the moderation outcome for one submission. Never mutated
// after creation.
type Verdict struct {
	Score    int    `json:"score"`
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// FailClosedReason is the verdict reason used whenever evaluation fails.
const FailClosedReason = "AI Service unavailable. Manual review required."

// failClosed is the verdict for any evaluation failure. Failing open would
// auto-approve unmoderated content, which is worse than holding a
// legitimate listing for manual review.
func failClosed() Verdict {
	return Verdict{Score: 0, Approved: false, Reason: FailClosedReason}
}

const evaluationPrompt = `You are a content moderator for a business directory. Evaluate the following business listing:

Business Name: %s
Category: %s
Description: %s

Check for:
1. Inappropriate content (NSFW, hate speech, illegal).
2. Spam or low quality (gibberish, repeated text).
3. Relevance (does it look like a real business?).

Return a JSON object with:
- score: A quality score from 0 to 100.
- approved: true if it should be published, false otherwise.
- reason: A short explanation (max 1 sentence).

Output JSON only.`

// Evaluator gates listing publication with a single completion call.
type Evaluator struct {
	completer llm.Completer
	logger    *slog.Logger
}

// New creates an evaluator.
func New(completer llm.Completer, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{completer: completer, logger: logger}
}

// Evaluate screens one listing. One request, one response, no retries.
// Every failure path returns the fail-closed verdict; Evaluate never
// returns an error.
func (e *Evaluator) Evaluate(ctx context.Context, name, description, category string) Verdict {
	if e.completer == nil {
		e.logger.Error("moderation has no completion client", "name", name)
		return failClosed()
	}

	prompt := fmt.Sprintf(evaluationPrompt, name, category, description)

	response, err := e.completer.CompletePrompt(ctx, prompt)
	if err != nil {
		e.logger.Error("moderation evaluation failed", "error", err, "name", name)
		return failClosed()
	}

	// Scores arrive as JSON numbers; accept floats and clamp.
	var parsed struct {
		Score    float64 `json:"score"`
		Approved bool    `json:"approved"`
		Reason   string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFences(response)), &parsed); err != nil {
		e.logger.Error("moderation response not parsable", "error", err, "name", name)
		return failClosed()
	}

	verdict := Verdict{
		Score:    clampScore(parsed.Score),
		Approved: parsed.Approved,
		Reason:   parsed.Reason,
	}
	e.logger.Info("listing evaluated",
		"name", name,
		"score", verdict.Score,
		"approved", verdict.Approved,
	)
	return verdict
}

func clampScore(score float64) int {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}

package assistant

import (
	"encoding/json"
	"strings"

	"github.com/bizhubhq/bizhub/internal/llm"
)

// ToolInvocation is a structured tool request parsed from a completion.
// Transient: it exists only within one loop iteration.
type ToolInvocation struct {
	Tool        string            `json:"tool"`
	Params      map[string]string `json:"params"`
	UserMessage string            `json:"response,omitempty"`
}

// parseInvocation attempts to read a completion as a tool invocation.
// Returns the invocation, the cleaned JSON text and true on success.
// Anything that is not a single JSON object with a tool field is a plain
// answer, not an error.
func parseInvocation(responseText string) (*ToolInvocation, string, bool) {
	clean := llm.StripCodeFences(responseText)
	if !strings.HasPrefix(clean, "{") || !strings.HasSuffix(clean, "}") {
		return nil, "", false
	}

	var inv ToolInvocation
	if err := json.Unmarshal([]byte(clean), &inv); err != nil {
		return nil, "", false
	}
	if inv.Tool == "" {
		return nil, "", false
	}
	if inv.Params == nil {
		inv.Params = map[string]string{}
	}

	return &inv, clean, true
}

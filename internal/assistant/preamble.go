package assistant

import (
	"github.com/bizhubhq/bizhub/internal/llm"
)

// toolInstructions is the fixed tool-capability preamble. It is
// materialized exactly once per Run, ahead of the replayed history.
const toolInstructions = `You have access to the following tools to control the website and fetch information.
To use a tool, you must respond with a JSON object in this format:
{ "tool": "toolName", "params": { "param1": "value" }, "response": "Message to user (optional)" }

Available Tools:
1. findBusiness(query): Search the database for businesses. Use this to ANSWER questions like "which business is X" or "find me a plumber". Params: { "query": "pizza" }
2. navigate(url): Go to a page. relative paths allowed (e.g., 'index.html', 'search.html').
3. search(query): Use this ONLY if the user explicitly asks to "go to search page" or "show me search results". Params: { "query": "pizza" }
4. setTheme(theme): Switch theme. Params: { "theme": "light" | "dark" | "system" }
5. showAlert(message, type): Show a toast notification. Params: { "message": "text", "type": "success"|"error"|"info" }
6. scroll(position): Scroll page. Params: { "position": "top"|"bottom"|"elementId" }

Strategy:
- If the user asks a specific question (e.g., "Who runs the bakery?"), use 'findBusiness' first to get the data, then answer the user in the next turn.
- If 'findBusiness' returns data, use that data to answer the user's question.
- If the user wants to perform an action (nav, scroll), use the appropriate tool.
- Always output valid JSON for tools.`

// preambleAck is the canned model acknowledgment completing the preamble.
const preambleAck = "Understood. I can control the website and find info using JSON tool commands."

// buildConversation materializes the working conversation: preamble turns
// first (exactly once), then the replayed history, then the new user turn.
func buildConversation(systemContext string, history llm.Conversation, userMessage string) llm.Conversation {
	preamble := toolInstructions
	if systemContext != "" {
		preamble = systemContext + "\n\n" + toolInstructions
	}

	conv := make(llm.Conversation, 0, len(history)+3)
	conv = conv.Append(llm.RoleUser, preamble)
	conv = conv.Append(llm.RoleModel, preambleAck)
	conv = append(conv, history...)
	conv = conv.Append(llm.RoleUser, userMessage)
	return conv
}

// Package llm provides clients for the completion service: a proxy client
// speaking the Gemini wire format and a direct-provider client built on
// langchaingo.
package llm

// Role tags the speaker of a conversation turn.
type Role string

const (
	// RoleUser is a message from the user.
	RoleUser Role = "user"
	// RoleModel is a message from the assistant/model.
	RoleModel Role = "model"
)

// Turn is a single role-tagged message.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is an ordered sequence of turns. Order is semantically
// meaningful: it is replayed verbatim to the completion service. A
// conversation is mutated only by appending.
type Conversation []Turn

// Append returns the conversation with a new turn added.
func (c Conversation) Append(role Role, text string) Conversation {
	return append(c, Turn{Role: role, Text: text})
}

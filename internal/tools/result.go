// Package tools maps assistant tool invocations to side-effecting actions
// against the host page and the directory store.
package tools

// Kind tags a tool result. It is the sole branching decision of the agent
// loop: Action terminates the exchange, Data re-enters the conversation.
type Kind int

const (
	// KindAction means the tool performed a user-visible action; no further
	// model interaction is needed.
	KindAction Kind = iota
	// KindData means the tool produced information to feed back into the
	// conversation.
	KindData
)

// Result is the outcome of a tool execution.
type Result struct {
	Kind    Kind
	Payload string // set only for KindData
}

// Action returns a terminal action result.
func Action() Result {
	return Result{Kind: KindAction}
}

// Data returns a result whose payload is fed back to the model.
func Data(payload string) Result {
	return Result{Kind: KindData, Payload: payload}
}

// IsData reports whether the result re-enters the conversation.
func (r Result) IsData() bool {
	return r.Kind == KindData
}

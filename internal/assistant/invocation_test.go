package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvocation(t *testing.T) {
	t.Run("plain tool call", func(t *testing.T) {
		inv, raw, ok := parseInvocation(`{"tool":"setTheme","params":{"theme":"dark"}}`)
		require.True(t, ok)
		assert.Equal(t, "setTheme", inv.Tool)
		assert.Equal(t, "dark", inv.Params["theme"])
		assert.JSONEq(t, `{"tool":"setTheme","params":{"theme":"dark"}}`, raw)
	})

	t.Run("fenced tool call", func(t *testing.T) {
		inv, _, ok := parseInvocation("```json\n{\"tool\":\"scroll\",\"params\":{\"position\":\"top\"}}\n```")
		require.True(t, ok)
		assert.Equal(t, "scroll", inv.Tool)
	})

	t.Run("optional user message", func(t *testing.T) {
		inv, _, ok := parseInvocation(`{"tool":"navigate","params":{"url":"search.html"},"response":"Taking you there!"}`)
		require.True(t, ok)
		assert.Equal(t, "Taking you there!", inv.UserMessage)
	})

	t.Run("missing params yields empty map", func(t *testing.T) {
		inv, _, ok := parseInvocation(`{"tool":"scroll"}`)
		require.True(t, ok)
		require.NotNil(t, inv.Params)
		assert.Empty(t, inv.Params)
	})

	t.Run("plain text is not an invocation", func(t *testing.T) {
		_, _, ok := parseInvocation("The best pizza in town is at Mario's.")
		assert.False(t, ok)
	})

	t.Run("json without tool field is not an invocation", func(t *testing.T) {
		_, _, ok := parseInvocation(`{"answer":"42"}`)
		assert.False(t, ok)
	})

	t.Run("invalid json is not an invocation", func(t *testing.T) {
		_, _, ok := parseInvocation(`{"tool": "navigate",`)
		assert.False(t, ok)
	})

	t.Run("fenced prose is not an invocation", func(t *testing.T) {
		_, _, ok := parseInvocation("```\nsome code example\n```")
		assert.False(t, ok)
	})
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/bizhubhq/bizhub/internal/assistant"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/charmbracelet/lipgloss"
)

// exchangeTimeout bounds one assistant exchange from the TUI.
const exchangeTimeout = 60 * time.Second

// chatTheme holds the color scheme for the chat display.
type chatTheme struct {
	You       lipgloss.Color
	Assistant lipgloss.Color
	Action    lipgloss.Color
	Error     lipgloss.Color
	Hint      lipgloss.Color
}

// darkTheme and lightTheme mirror the web surface's theme toggle.
var darkTheme = chatTheme{
	You:       lipgloss.Color("#5FAFD7"), // light blue
	Assistant: lipgloss.Color("#00D787"), // green
	Action:    lipgloss.Color("#D7AF00"), // amber
	Error:     lipgloss.Color("#FF005F"), // red
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
}

var lightTheme = chatTheme{
	You:       lipgloss.Color("#005F87"),
	Assistant: lipgloss.Color("#008700"),
	Action:    lipgloss.Color("#875F00"),
	Error:     lipgloss.Color("#AF0000"),
	Hint:      lipgloss.Color("#8A8A8A"),
}

func (t chatTheme) youStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.You).Bold(true)
}

func (t chatTheme) assistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Assistant)
}

func (t chatTheme) actionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Action).Italic(true)
}

func (t chatTheme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t chatTheme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// chatLine is one rendered line of the transcript.
type chatLine struct {
	kind string // "you", "assistant", "action", "error"
	text string
}

// replyMsg carries the result of one assistant exchange.
type replyMsg struct {
	userMessage string
	reply       string
	actions     []string
	theme       string
	err         error
}

// chatModel is the bubbletea model for the interactive chat session.
type chatModel struct {
	ctx      context.Context
	agent    *assistant.Agent
	host     *termHost
	input    textinput.Model
	lines    []chatLine
	history  llm.Conversation
	throttle *throttle
	theme    chatTheme
	thinking bool
	quitting bool
}

// newChatModel creates a chat model with an empty transcript.
func newChatModel(ctx context.Context, agent *assistant.Agent, host *termHost) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask about local businesses..."
	input.Focus()

	return chatModel{
		ctx:      ctx,
		agent:    agent,
		host:     host,
		input:    input,
		throttle: newThrottle(),
		theme:    darkTheme,
	}
}

// Init returns the initial command.
func (m chatModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model.
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.thinking {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if !m.throttle.allow() {
				m.lines = append(m.lines, chatLine{kind: "error", text: "One message at a time, please! Give me a second to catch up."})
				return m, nil
			}
			m.input.SetValue("")
			m.lines = append(m.lines, chatLine{kind: "you", text: text})
			m.thinking = true
			return m, m.ask(text)
		}

	case replyMsg:
		m.thinking = false
		for _, action := range msg.actions {
			m.lines = append(m.lines, chatLine{kind: "action", text: action})
		}
		switch msg.theme {
		case "light":
			m.theme = lightTheme
		case "dark":
			m.theme = darkTheme
		}

		if msg.err != nil {
			if errors.Is(msg.err, llm.ErrRateLimited) {
				m.throttle.backoff()
			}
			m.lines = append(m.lines, chatLine{kind: "error", text: describeChatError(msg.err).Error()})
			return m, nil
		}

		m.throttle.reset()
		m.history = m.history.
			Append(llm.RoleUser, msg.userMessage).
			Append(llm.RoleModel, msg.reply)
		m.lines = append(m.lines, chatLine{kind: "assistant", text: msg.reply})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one assistant exchange as a command so Update never blocks.
func (m chatModel) ask(text string) tea.Cmd {
	history := m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, exchangeTimeout)
		defer cancel()

		reply, err := m.agent.Run(ctx, text, "", history)
		return replyMsg{
			userMessage: text,
			reply:       reply,
			actions:     m.host.drain(),
			theme:       m.host.currentTheme(),
			err:         err,
		}
	}
}

// View renders the chat display.
func (m chatModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m chatModel) renderContent() string {
	if m.quitting {
		return m.theme.hintStyle().Render("Bye!") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(m.theme.assistantStyle().Render("BizHub Assistant") + "\n")
	sb.WriteString(m.theme.hintStyle().Render("Ask about local businesses. Esc to quit.") + "\n\n")

	for _, line := range m.lines {
		switch line.kind {
		case "you":
			sb.WriteString(m.theme.youStyle().Render("You: ") + line.text + "\n")
		case "assistant":
			sb.WriteString(m.theme.assistantStyle().Render("Assistant: ") + line.text + "\n")
		case "action":
			sb.WriteString(m.theme.actionStyle().Render(fmt.Sprintf("→ %s", line.text)) + "\n")
		case "error":
			sb.WriteString(m.theme.errorStyle().Render(line.text) + "\n")
		}
	}

	if m.thinking {
		sb.WriteString(m.theme.hintStyle().Render("Thinking...") + "\n")
	}

	sb.WriteString("\n" + m.input.View() + "\n")
	return sb.String()
}

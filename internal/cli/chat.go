package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/bizhubhq/bizhub/internal/assistant"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/tools"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the BizHub assistant",
	Long: `Chat with the BizHub assistant. The assistant can search the directory,
list categories, and answer questions about local businesses.

With no arguments an interactive session starts. With a message argument
(or when stdin is not a terminal) the assistant answers once and exits.

Examples:
  bizhub chat
  bizhub chat "find me a pizza place"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

// termHost implements the page capability interfaces for a terminal session.
// Page actions have no page to act on, so they are collected and shown as
// "the assistant did X" lines after the exchange.
type termHost struct {
	mu      sync.Mutex
	actions []string
	theme   string
}

func (h *termHost) record(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions = append(h.actions, line)
}

// drain returns and clears the actions collected during one exchange.
func (h *termHost) drain() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	actions := h.actions
	h.actions = nil
	return actions
}

func (h *termHost) currentTheme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

func (h *termHost) Navigate(url string) error {
	h.record("Opened " + url)
	return nil
}

func (h *termHost) Search(query string) error {
	h.record(fmt.Sprintf("Searched the directory for %q", query))
	return nil
}

func (h *termHost) SetTheme(theme string) error {
	h.mu.Lock()
	h.theme = theme
	h.mu.Unlock()
	h.record("Switched theme to " + theme)
	return nil
}

func (h *termHost) Notify(message, level string) error {
	h.record(fmt.Sprintf("[%s] %s", level, message))
	return nil
}

func (h *termHost) Scroll(position string) error {
	h.record("Scrolled to " + position)
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c, err := getCompleter(ctx)
	if err != nil {
		return err
	}

	host := &termHost{}
	registry := tools.NewRegistry(dbClient, host, host, host, host, nil)
	agent := assistant.New(c, registry, nil)

	// One-shot mode for a message argument or piped stdin.
	if len(args) == 1 {
		return answerOnce(ctx, agent, host, args[0])
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return answerOnce(ctx, agent, host, string(data))
	}

	return runChatTUI(ctx, agent, host)
}

func answerOnce(ctx context.Context, agent *assistant.Agent, host *termHost, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("empty message")
	}

	reply, err := agent.Run(ctx, message, "", nil)
	if err != nil {
		return fmt.Errorf("assistant: %w", describeChatError(err))
	}

	for _, action := range host.drain() {
		fmt.Printf("→ %s\n", action)
	}
	fmt.Println(reply)
	return nil
}

// describeChatError maps completion failures to messages fit for a person.
func describeChatError(err error) error {
	if errors.Is(err, llm.ErrRateLimited) {
		return fmt.Errorf("the assistant is getting a lot of requests right now, try again in a few seconds")
	}
	return fmt.Errorf("the assistant service is unreachable, try again in a moment")
}

func runChatTUI(ctx context.Context, agent *assistant.Agent, host *termHost) error {
	model := newChatModel(ctx, agent, host)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}

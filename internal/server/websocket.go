package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bizhubhq/bizhub/internal/assistant"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/tools"
	"github.com/gorilla/websocket"
)

// Admission control for chat messages. The floor widens after a rate-limit
// error so a throttled upstream gets room to recover.
const (
	minMessageSpacing     = 2 * time.Second
	backoffMessageSpacing = 10 * time.Second
)

// Friendly chat-surface errors. Raw error text never reaches the client.
const (
	rateLimitedReply = "The assistant is getting a lot of requests right now. Please wait a moment and try again."
	unavailableReply = "Sorry, I couldn't reach the assistant service. Please try again in a moment."
	tooFastReply     = "One message at a time, please! Give me a second to catch up."
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev
	},
}

// chatRequest is one inbound client frame.
type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// chatEvent is one outbound server frame. Type is "reply", "action" or
// "error"; action frames carry the remaining fields for the client to apply.
type chatEvent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Action   string `json:"action,omitempty"`
	URL      string `json:"url,omitempty"`
	Query    string `json:"query,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Level    string `json:"level,omitempty"`
	Position string `json:"position,omitempty"`
}

// chatSession is one websocket chat connection. It implements the page
// capability interfaces by sending action frames for the browser to apply,
// so the same agent and tool registry drive both the TUI and the web client.
type chatSession struct {
	conn   *websocket.Conn
	writeM sync.Mutex
	logger *slog.Logger

	agent   *assistant.Agent
	history llm.Conversation

	lastExchange time.Time
	spacing      time.Duration
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Completer == nil {
		http.Error(w, "chat is not configured", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	session := &chatSession{
		conn:    conn,
		logger:  s.logger,
		spacing: minMessageSpacing,
	}

	completer := s.deps.Completer
	var executor assistant.ToolExecutor = tools.NewRegistry(s.deps.Finder, session, session, session, session, s.logger)
	if s.deps.Collector != nil {
		completer = &timedCompleter{inner: completer, collector: s.deps.Collector}
		executor = &timedExecutor{inner: executor, collector: s.deps.Collector}
	}
	session.agent = assistant.New(completer, executor, s.logger)

	s.logger.Info("chat session opened", "remote", conn.RemoteAddr().String())
	session.run(r.Context(), s.deps.Collector)
	s.logger.Info("chat session closed", "remote", conn.RemoteAddr().String())
}

func (c *chatSession) run(ctx context.Context, collector *metrics.Collector) {
	defer c.conn.Close()

	for {
		var req chatRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("chat read ended", "error", err)
			}
			return
		}
		if req.Message == "" {
			continue
		}

		if wait := c.spacing - time.Since(c.lastExchange); wait > 0 {
			c.send(chatEvent{Type: "error", Text: tooFastReply})
			continue
		}
		c.lastExchange = time.Now()

		start := time.Now()
		reply, err := c.agent.Run(ctx, req.Message, req.Context, c.history)
		if collector != nil {
			collector.RecordTiming(metrics.OpChatExchange, time.Since(start))
		}

		if err != nil {
			c.send(chatEvent{Type: "error", Text: c.describeFailure(err)})
			continue
		}

		c.spacing = minMessageSpacing
		c.history = c.history.Append(llm.RoleUser, req.Message).Append(llm.RoleModel, reply)
		c.send(chatEvent{Type: "reply", Text: reply})
	}
}

// describeFailure maps an exchange error to a friendly message, widening the
// message spacing when the upstream is rate limiting us.
func (c *chatSession) describeFailure(err error) string {
	if errors.Is(err, llm.ErrRateLimited) {
		c.spacing = backoffMessageSpacing
		c.logger.Warn("chat exchange rate limited")
		return rateLimitedReply
	}
	c.logger.Error("chat exchange failed", "error", err)
	return unavailableReply
}

func (c *chatSession) send(event chatEvent) {
	c.writeM.Lock()
	defer c.writeM.Unlock()
	if err := c.conn.WriteJSON(event); err != nil {
		c.logger.Debug("chat write failed", "error", err)
	}
}

// Navigate implements tools.Navigator.
func (c *chatSession) Navigate(url string) error {
	c.send(chatEvent{Type: "action", Action: "navigate", URL: url})
	return nil
}

// Search implements tools.Navigator.
func (c *chatSession) Search(query string) error {
	c.send(chatEvent{Type: "action", Action: "search", Query: query})
	return nil
}

// SetTheme implements tools.ThemeSwitcher.
func (c *chatSession) SetTheme(theme string) error {
	c.send(chatEvent{Type: "action", Action: "setTheme", Theme: theme})
	return nil
}

// Notify implements tools.Notifier.
func (c *chatSession) Notify(message, level string) error {
	c.send(chatEvent{Type: "action", Action: "notify", Text: message, Level: level})
	return nil
}

// Scroll implements tools.Scroller.
func (c *chatSession) Scroll(position string) error {
	c.send(chatEvent{Type: "action", Action: "scroll", Position: position})
	return nil
}

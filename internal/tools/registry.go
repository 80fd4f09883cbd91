package tools

import (
	"context"
	"log/slog"
)

// Tool names. The vocabulary is fixed and case-sensitive.
const (
	ToolFindBusiness = "findBusiness"
	ToolNavigate     = "navigate"
	ToolSearch       = "search"
	ToolSetTheme     = "setTheme"
	ToolShowAlert    = "showAlert"
	ToolScroll       = "scroll"
)

// Registry holds the injected capabilities and dispatches tool invocations.
type Registry struct {
	store    Finder
	nav      Navigator
	theme    ThemeSwitcher
	notifier Notifier
	scroller Scroller
	logger   *slog.Logger
}

// NewRegistry creates a registry. Any capability may be nil; tools that
// need a missing capability degrade to a Data error result.
func NewRegistry(store Finder, nav Navigator, theme ThemeSwitcher, notifier Notifier, scroller Scroller, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:    store,
		nav:      nav,
		theme:    theme,
		notifier: notifier,
		scroller: scroller,
		logger:   logger,
	}
}

// Execute runs the named tool. It never returns an error: unknown tools and
// execution failures degrade to Data results so the agent loop can report
// the oddity back to the model rather than crash.
func (r *Registry) Execute(ctx context.Context, tool string, params map[string]string) Result {
	r.logger.Debug("executing tool", "tool", tool, "params", params)

	switch tool {
	case ToolFindBusiness:
		return r.findBusiness(ctx, params)
	case ToolNavigate:
		return r.navigate(params)
	case ToolSearch:
		return r.search(params)
	case ToolSetTheme:
		return r.setTheme(params)
	case ToolShowAlert:
		return r.showAlert(params)
	case ToolScroll:
		return r.scroll(params)
	default:
		r.logger.Warn("unknown tool requested", "tool", tool)
		return Data("Unknown tool")
	}
}

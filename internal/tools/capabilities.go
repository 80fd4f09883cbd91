package tools

import (
	"context"

	"github.com/bizhubhq/bizhub/internal/models"
)

// Capability interfaces abstract the host page so tool executors are
// testable without a browser or network.

// Navigator controls page location.
type Navigator interface {
	// Navigate redirects the active page; relative paths are permitted.
	Navigate(url string) error

	// Search populates the page's search field and triggers its search
	// behavior, or redirects to a results page with the query encoded.
	Search(query string) error
}

// ThemeSwitcher switches the host theme.
type ThemeSwitcher interface {
	SetTheme(theme string) error
}

// Notifier displays a transient notification.
type Notifier interface {
	Notify(message, level string) error
}

// Scroller scrolls the page to "top", "bottom", or a named element.
type Scroller interface {
	Scroll(position string) error
}

// Finder is the directory-store search used by findBusiness.
type Finder interface {
	SearchBusinesses(ctx context.Context, query string, limit int) ([]models.BusinessSummary, error)
}

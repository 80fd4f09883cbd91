package tools

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/bizhubhq/bizhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Fake capabilities recording what they were called with.

type fakeStore struct {
	results []models.BusinessSummary
	err     error
	query   string
	limit   int
}

func (f *fakeStore) SearchBusinesses(_ context.Context, query string, limit int) ([]models.BusinessSummary, error) {
	f.query = query
	f.limit = limit
	return f.results, f.err
}

type fakeHost struct {
	navigatedTo   string
	searchedFor   string
	theme         string
	notifyMessage string
	notifyLevel   string
	scrolledTo    string
	err           error
}

func (f *fakeHost) Navigate(url string) error { f.navigatedTo = url; return f.err }
func (f *fakeHost) Search(query string) error { f.searchedFor = query; return f.err }
func (f *fakeHost) SetTheme(theme string) error { f.theme = theme; return f.err }

func (f *fakeHost) Notify(msg, lvl string) error {
	f.notifyMessage = msg
	f.notifyLevel = lvl
	return f.err
}

func (f *fakeHost) Scroll(position string) error { f.scrolledTo = position; return f.err }

func newTestRegistry(store Finder, host *fakeHost) *Registry {
	return NewRegistry(store, host, host, host, host, testLogger())
}

func TestFindBusiness(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matches as data", func(t *testing.T) {
		store := &fakeStore{results: []models.BusinessSummary{
			{Name: "Mario's Pizza Palace", Description: "Wood-fired pizza", Category: "Food & Dining"},
		}}
		reg := newTestRegistry(store, &fakeHost{})

		result := reg.Execute(ctx, ToolFindBusiness, map[string]string{"query": "pizza"})
		require.True(t, result.IsData())
		assert.Contains(t, result.Payload, "Found businesses:")
		assert.Contains(t, result.Payload, "Mario's Pizza Palace")
		assert.Equal(t, "pizza", store.query)
		assert.Equal(t, findBusinessLimit, store.limit)
	})

	t.Run("no matches", func(t *testing.T) {
		reg := newTestRegistry(&fakeStore{}, &fakeHost{})
		result := reg.Execute(ctx, ToolFindBusiness, map[string]string{"query": "pizza"})
		require.True(t, result.IsData())
		assert.Equal(t, "No businesses found matching that query.", result.Payload)
	})

	t.Run("store failure degrades to data", func(t *testing.T) {
		reg := newTestRegistry(&fakeStore{err: errors.New("connection lost")}, &fakeHost{})
		result := reg.Execute(ctx, ToolFindBusiness, map[string]string{"query": "pizza"})
		require.True(t, result.IsData())
		assert.Contains(t, result.Payload, "Error searching:")
	})

	t.Run("missing store", func(t *testing.T) {
		reg := newTestRegistry(nil, &fakeHost{})
		result := reg.Execute(ctx, ToolFindBusiness, map[string]string{"query": "pizza"})
		require.True(t, result.IsData())
		assert.Equal(t, "Database not available.", result.Payload)
	})
}

func TestNavigate(t *testing.T) {
	host := &fakeHost{}
	reg := newTestRegistry(nil, host)

	result := reg.Execute(context.Background(), ToolNavigate, map[string]string{"url": "search.html"})
	assert.Equal(t, KindAction, result.Kind)
	assert.Equal(t, "search.html", host.navigatedTo)
}

func TestSearch(t *testing.T) {
	host := &fakeHost{}
	reg := newTestRegistry(nil, host)

	result := reg.Execute(context.Background(), ToolSearch, map[string]string{"query": "plumber"})
	assert.Equal(t, KindAction, result.Kind)
	assert.Equal(t, "plumber", host.searchedFor)
}

func TestSetTheme(t *testing.T) {
	t.Run("valid theme", func(t *testing.T) {
		host := &fakeHost{}
		reg := newTestRegistry(nil, host)

		result := reg.Execute(context.Background(), ToolSetTheme, map[string]string{"theme": "dark"})
		assert.Equal(t, KindAction, result.Kind)
		assert.Equal(t, "dark", host.theme)
	})

	t.Run("invalid theme degrades to data", func(t *testing.T) {
		host := &fakeHost{}
		reg := newTestRegistry(nil, host)

		result := reg.Execute(context.Background(), ToolSetTheme, map[string]string{"theme": "neon"})
		require.True(t, result.IsData())
		assert.Contains(t, result.Payload, "Error:")
		assert.Empty(t, host.theme)
	})
}

func TestShowAlert(t *testing.T) {
	host := &fakeHost{}
	reg := newTestRegistry(nil, host)

	result := reg.Execute(context.Background(), ToolShowAlert, map[string]string{
		"message": "Saved!",
		"type":    "success",
	})
	assert.Equal(t, KindAction, result.Kind)
	assert.Equal(t, "Saved!", host.notifyMessage)
	assert.Equal(t, "success", host.notifyLevel)

	t.Run("unknown type defaults to info", func(t *testing.T) {
		reg.Execute(context.Background(), ToolShowAlert, map[string]string{
			"message": "hm",
			"type":    "loud",
		})
		assert.Equal(t, "info", host.notifyLevel)
	})
}

func TestScroll(t *testing.T) {
	for _, position := range []string{"top", "bottom", "pricingSection"} {
		host := &fakeHost{}
		reg := newTestRegistry(nil, host)

		result := reg.Execute(context.Background(), ToolScroll, map[string]string{"position": position})
		assert.Equal(t, KindAction, result.Kind)
		assert.Equal(t, position, host.scrolledTo)
	}
}

func TestUnknownTool(t *testing.T) {
	reg := newTestRegistry(nil, &fakeHost{})

	result := reg.Execute(context.Background(), "launchRocket", map[string]string{})
	require.True(t, result.IsData())
	assert.Equal(t, "Unknown tool", result.Payload)
}

func TestHostFailureDegradesToData(t *testing.T) {
	host := &fakeHost{err: errors.New("element not found")}
	reg := newTestRegistry(nil, host)

	result := reg.Execute(context.Background(), ToolScroll, map[string]string{"position": "top"})
	require.True(t, result.IsData())
	assert.Contains(t, result.Payload, "Error:")
}

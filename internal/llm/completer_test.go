package llm

import (
	"context"
	"testing"

	"github.com/bizhubhq/bizhub/internal/config"
)

func TestNewProxyProvider(t *testing.T) {
	c, err := New(context.Background(), config.Config{AIProvider: config.ProviderProxy}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*ProxyClient); !ok {
		t.Fatalf("expected *ProxyClient, got %T", c)
	}
}

func TestNewMisconfiguredProvider(t *testing.T) {
	// Construction failure must yield an interface that compares equal to
	// nil, so callers that keep running with moderation failing closed can
	// detect the missing client instead of dereferencing a nil *ModelClient.
	c, err := New(context.Background(), config.Config{AIProvider: config.ProviderGoogleAI}, testLogger())
	if err == nil {
		t.Fatal("expected error for googleai provider without an API key")
	}
	if c != nil {
		t.Fatalf("expected nil Completer on construction failure, got %T", c)
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	c, err := New(context.Background(), config.Config{AIProvider: "carrier-pigeon"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if c != nil {
		t.Fatalf("expected nil Completer, got %T", c)
	}
}

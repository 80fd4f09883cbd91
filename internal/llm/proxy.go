package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Wire types for the proxy boundary. The proxy forwards these verbatim to
// the upstream generative-language API.

// WireContent is one role-tagged message in the request body.
type WireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []WirePart `json:"parts"`
}

// WirePart is a single text fragment.
type WirePart struct {
	Text string `json:"text"`
}

// GenerateRequest is the POST body sent to the proxy.
type GenerateRequest struct {
	Contents []WireContent `json:"contents"`
}

// generateResponse is the success payload; the client reads
// candidates[0].content.parts[0].text.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []WirePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ProxyClient calls the completion service through the credential-holding
// proxy. The secret API key never passes through this client; it only
// carries the public anon key the proxy expects.
type ProxyClient struct {
	url     string
	anonKey string
	client  *http.Client
	logger  *slog.Logger
}

var _ Completer = (*ProxyClient)(nil)

// NewProxyClient creates a proxy-backed Completer.
func NewProxyClient(url, anonKey string, logger *slog.Logger) *ProxyClient {
	return &ProxyClient{
		url:     url,
		anonKey: anonKey,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// Complete sends the conversation in the Gemini wire shape.
func (p *ProxyClient) Complete(ctx context.Context, conv Conversation) (string, error) {
	contents := make([]WireContent, 0, len(conv))
	for _, turn := range conv {
		contents = append(contents, WireContent{
			Role:  string(turn.Role),
			Parts: []WirePart{{Text: turn.Text}},
		})
	}
	return p.generate(ctx, GenerateRequest{Contents: contents})
}

// CompletePrompt sends a single untagged prompt.
func (p *ProxyClient) CompletePrompt(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, GenerateRequest{
		Contents: []WireContent{{Parts: []WirePart{{Text: prompt}}}},
	})
}

func (p *ProxyClient) generate(ctx context.Context, reqBody GenerateRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.anonKey)
		req.Header.Set("apikey", p.anonKey)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion proxy: %w", err)
	}
	defer resp.Body.Close()

	p.logger.Debug("completion call finished",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Candidates) == 0 ||
		len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrMalformedResponse
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(body)
}

func TestProxyClientComplete(t *testing.T) {
	var gotReq GenerateRequest
	var gotAuth, gotAPIKey string
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("Hello there!")))
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL, "anon-key", testLogger())

	conv := Conversation{}.
		Append(RoleUser, "system preamble").
		Append(RoleModel, "Understood.").
		Append(RoleUser, "hi")

	text, err := client.Complete(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", text)
	assert.Equal(t, 1, calls, "exactly one outbound call per invocation")

	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, "anon-key", gotAPIKey)

	require.Len(t, gotReq.Contents, 3)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "model", gotReq.Contents[1].Role)
	assert.Equal(t, "hi", gotReq.Contents[2].Parts[0].Text)
}

func TestProxyClientCompletePromptOmitsRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		contents := raw["contents"].([]any)
		first := contents[0].(map[string]any)
		_, hasRole := first["role"]
		assert.False(t, hasRole, "single-shot prompt must not carry a role")
		w.Write([]byte(candidateBody("ok")))
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL, "", testLogger())
	text, err := client.CompletePrompt(context.Background(), "evaluate this")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestProxyClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL, "", testLogger())
	_, err := client.CompletePrompt(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestProxyClientServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL, "", testLogger())
	_, err := client.CompletePrompt(context.Background(), "hi")

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusBadGateway, serviceErr.Status)
}

func TestProxyClientMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"empty candidates", `{"candidates":[]}`},
		{"missing parts", `{"candidates":[{"content":{}}]}`},
		{"unrelated object", `{"status":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewProxyClient(srv.URL, "", testLogger())
			_, err := client.CompletePrompt(context.Background(), "hi")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// proxyTimeout bounds one upstream completion call.
const proxyTimeout = 60 * time.Second

// setCORSHeaders allows browser clients to call the proxy from any origin.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleGeminiProxy keeps the completion-service key on the server. The
// browser posts the raw generateContent request here and receives the
// upstream status and body verbatim.
func (s *Server) handleGeminiProxy(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")

	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Gemini proxy is active",
		})

	case http.MethodPost:
		s.forwardCompletion(w, r)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}
}

func (s *Server) forwardCompletion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Contents) == 0 || string(body.Contents) == "null" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing contents in request body"})
		return
	}

	apiKey := s.cfg.GeminiAPIKey
	if apiKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "GEMINI_API_KEY not configured on the server"})
		return
	}

	payload, err := json.Marshal(map[string]json.RawMessage{"contents": body.Contents})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	upstream := fmt.Sprintf(s.cfg.UpstreamURLTemplate, s.cfg.AIModel) + "?key=" + url.QueryEscape(apiKey)

	ctx, cancel := context.WithTimeout(r.Context(), proxyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, upstream, bytes.NewReader(payload))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.logger.Error("proxy upstream call failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer resp.Body.Close()

	// Upstream status and body pass through untouched.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Warn("proxy response copy failed", "error", err)
	}
}

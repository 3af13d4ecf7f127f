package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/askjudy/relay/core"
	"github.com/askjudy/relay/memory"
)

const (
	messagesPath     = "/v1/messages"
	anthropicVersion = "2023-06-01"

	defaultChatMaxTokens = 1500
)

// handleChat proxies a chat request to the Messages API and returns the
// upstream status and body verbatim. Only after the response has been
// written does it schedule memory extraction, detached from this request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AnthropicAPIKey == "" {
		s.writeError(w, http.StatusInternalServerError, "ANTHROPIC_API_KEY not configured")
		return
	}

	var req core.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == "" {
		req.Model = s.cfg.ChatModel
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = defaultChatMaxTokens
	}
	if len(req.Messages) == 0 {
		req.Messages = json.RawMessage("[]")
	}

	body, err := json.Marshal(map[string]interface{}{
		"model":      req.Model,
		"max_tokens": req.MaxTokens,
		"system":     req.System,
		"messages":   req.Messages,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to encode upstream request")
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		s.cfg.AnthropicBaseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("x-api-key", s.cfg.AnthropicAPIKey)
	upstream.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(upstream)
	if err != nil {
		s.logger.Error("Anthropic API call failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to reach Anthropic API")
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("Failed to read upstream response", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to reach Anthropic API")
		return
	}

	// Upstream status and body pass through unchanged, errors included.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(respBody)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}
	s.scheduleExtraction(req.Messages, respBody)
}

// scheduleExtraction detaches the memory pipeline from the request. It runs
// only when persistence is configured and the exchange has both a last
// user-authored turn with text and assistant text; its outcome is never
// awaited or surfaced on this request.
func (s *Server) scheduleExtraction(messages json.RawMessage, respBody []byte) {
	if s.store == nil || s.extractor == nil {
		return
	}
	userText := core.LastUserText(messages)
	assistantText := core.ResponseText(respBody)
	if userText == "" || assistantText == "" {
		return
	}

	// Background context: an in-flight extraction outlives the request and
	// is never cancelled by a later one.
	go s.extractor.ExtractAndStore(context.Background(), memory.Exchange{
		UserText:      userText,
		AssistantText: assistantText,
	})
}

// Package core holds the wire types shared between the relay and the
// extraction pipeline.
//
// The relay forwards chat requests to the Messages API verbatim, so these
// types deliberately stay loose: message lists are kept as raw JSON for
// forwarding and only decoded into typed turns when the extraction pipeline
// needs the plain text of an exchange.
package core

import (
	"encoding/json"
	"strings"
)

// ChatRequest is the body accepted by the chat relay endpoint.
type ChatRequest struct {
	Model     string          `json:"model,omitempty"`
	MaxTokens int64           `json:"max_tokens,omitempty"`
	System    string          `json:"system,omitempty"`
	Messages  json.RawMessage `json:"messages,omitempty"`
}

// Message is one conversation turn.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// ContentBlock is a typed content block. Blocks that are not text-bearing
// (images, tool use) decode with an empty Text and are ignored.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Content accepts either a bare string or a list of typed content blocks,
// the two shapes the Messages API allows for a turn's content.
type Content struct {
	text   string
	blocks []ContentBlock
	plain  bool
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.text = s
		c.plain = true
		return nil
	}
	c.plain = false
	// Any other shape yields no text rather than an error; the relay never
	// rejects a request the upstream might accept.
	_ = json.Unmarshal(data, &c.blocks)
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.plain {
		return json.Marshal(c.text)
	}
	return json.Marshal(c.blocks)
}

// PlainText returns the turn's text: the string content as-is, or the
// text-typed blocks concatenated in order, newline-separated.
func (c Content) PlainText() string {
	if c.plain {
		return c.text
	}
	var parts []string
	for _, b := range c.blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// LastUserText returns the plain text of the last user-authored turn in a
// raw message list, or "" when there is none (or the list does not decode).
func LastUserText(messages json.RawMessage) string {
	var turns []Message
	if err := json.Unmarshal(messages, &turns); err != nil {
		return ""
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == "user" {
			return turns[i].Content.PlainText()
		}
	}
	return ""
}

// MessagesResponse is the subset of the upstream response body the relay
// inspects after forwarding it.
type MessagesResponse struct {
	Content []ContentBlock `json:"content"`
}

// Text concatenates the text-typed content blocks of the response.
func (r *MessagesResponse) Text() string {
	var sb strings.Builder
	for _, b := range r.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

// ResponseText decodes an upstream response body and returns its text
// content, or "" when the body does not decode.
func ResponseText(body []byte) string {
	var resp MessagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Text()
}

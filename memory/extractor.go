package memory

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"
)

const (
	// Extraction runs on a lighter model with a small token budget; it must
	// never cost as much as the chat call it trails.
	defaultExtractionModel = "claude-3-5-haiku-latest"
	extractionMaxTokens    = 512
)

// Extractor runs the background memory-extraction pipeline for one
// completed exchange: build prompt, one cheap model call, parse, validate,
// batch insert.
type Extractor struct {
	client  *anthropic.Client
	store   Store
	indexer Indexer
	logger  *log.Logger
	model   string
}

// ExtractorOption configures the extractor.
type ExtractorOption func(*Extractor)

// WithModel overrides the extraction model.
func WithModel(model string) ExtractorOption {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithIndexer adds a semantic index that receives every stored memory.
func WithIndexer(ix Indexer) ExtractorOption {
	return func(e *Extractor) {
		e.indexer = ix
	}
}

// NewClient builds the Messages API client for extraction calls. Retries
// are disabled at the client level: extraction is at-most-once, so a failed
// call is logged and abandoned, never reissued.
func NewClient(apiKey, baseURL string) *anthropic.Client {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &client
}

// NewExtractor creates an extractor writing to the given store.
func NewExtractor(client *anthropic.Client, store Store, logger *log.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		client: client,
		store:  store,
		logger: logger,
		model:  defaultExtractionModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractAndStore derives durable facts from a completed exchange and
// appends them to the store. It is invoked fire-and-forget after the chat
// response has already been sent, so it has at-most-once semantics: every
// failure is logged and absorbed here, nothing is retried, and nothing
// reaches the caller.
func (e *Extractor) ExtractAndStore(ctx context.Context, ex Exchange) {
	if e.store == nil {
		return
	}
	// Cost short-circuit, not an error: no prompt is built and no call is
	// made for an empty user turn.
	if ex.UserText == "" {
		return
	}

	prompt := BuildExtractionPrompt(ex.UserText, ex.AssistantText)
	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: extractionMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		e.logger.Warn("Memory extraction call failed", "error", err)
		return
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	validated := ValidateCandidates(ParseCandidates(text.String()))
	if len(validated) == 0 {
		e.logger.Debug("No memories extracted from exchange")
		return
	}

	if err := e.store.InsertMemories(ctx, validated); err != nil {
		e.logger.Error("Failed to store extracted memories", "error", err, "count", len(validated))
		return
	}
	e.logger.Info("Stored extracted memories", "count", len(validated))

	if e.indexer != nil {
		if err := e.indexer.Add(ctx, validated); err != nil {
			e.logger.Warn("Failed to index extracted memories", "error", err)
		}
	}
}

package memory

import (
	"context"
	"time"
)

// DefaultOwner is the fixed single-user identity. Every persisted record is
// scoped to it; there is no multi-tenant addressing anywhere in the system.
const DefaultOwner = "judy"

// Candidate is an unvalidated extraction result parsed from untrusted model
// output. The wire key for the fact text is "memory", matching what the
// extraction prompt asks the model to return.
type Candidate struct {
	Memory   string `json:"memory"`
	Category string `json:"category"`
}

// Memory is a validated fact eligible for durable storage. Rows are
// immutable and append-only: the system never edits or deduplicates an
// existing memory, only adds new ones.
type Memory struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Fact      string    `json:"fact"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Exchange pairs one user utterance with the assistant's reply to it. It is
// constructed per request from the just-completed turn and discarded after
// extraction runs.
type Exchange struct {
	UserText      string
	AssistantText string
}

// Store is the durable backend for memories.
// Implementation: sqlite (memory/store/sqlite).
type Store interface {
	// InsertMemories appends a batch of validated memories in one operation.
	InsertMemories(ctx context.Context, memories []Memory) error

	// ListMemories returns the owner's memories, newest first.
	ListMemories(ctx context.Context, owner string) ([]Memory, error)

	// DeleteMemory removes a memory by ID, scoped to the owner.
	DeleteMemory(ctx context.Context, owner, id string) error

	// Close releases resources.
	Close() error
}

// Indexer receives validated memories for semantic search. Optional: a nil
// Indexer means facts are only persisted, never indexed.
type Indexer interface {
	Add(ctx context.Context, memories []Memory) error
}

// Embedder converts text to vector embeddings for the semantic index.
// Implementations: mock (testing), onnx (local model, build-tagged).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

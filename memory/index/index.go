// Package index provides an optional in-process semantic index over stored
// facts, backed by chromem-go (an embedded, pure-Go vector database).
//
// The index is additive only and never on the chat critical path: facts are
// added right after a successful store insert, and the search endpoint
// queries it by embedding similarity. A disabled index simply means the
// search surface returns nothing.
package index

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
	"github.com/pkg/errors"

	"github.com/askjudy/relay/memory"
)

// Result is one semantic search hit.
type Result struct {
	ID         string  `json:"id"`
	Fact       string  `json:"fact"`
	Category   string  `json:"category"`
	Similarity float32 `json:"similarity"`
}

// Index holds a vector collection of stored facts for the fixed owner.
type Index struct {
	col      *chromem.Collection
	embedder memory.Embedder
}

var _ memory.Indexer = (*Index)(nil)

// New creates an empty index using the given embedder.
func New(embedder memory.Embedder) (*Index, error) {
	db := chromem.NewDB()
	// Embeddings are provided explicitly, default cosine distance.
	col, err := db.CreateCollection(fmt.Sprintf("memories_%s", memory.DefaultOwner), nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create collection")
	}
	return &Index{col: col, embedder: embedder}, nil
}

// Add embeds and indexes a batch of memories.
func (ix *Index) Add(ctx context.Context, memories []memory.Memory) error {
	for _, m := range memories {
		emb, err := ix.embedder.Embed(ctx, m.Fact)
		if err != nil {
			return errors.Wrap(err, "embed fact")
		}
		err = ix.col.AddDocument(ctx, chromem.Document{
			ID:        m.ID,
			Content:   m.Fact,
			Embedding: emb,
			Metadata: map[string]string{
				"owner":    m.Owner,
				"category": string(m.Category),
			},
		})
		if err != nil {
			return errors.Wrap(err, "add document")
		}
	}
	return nil
}

// Search returns the stored facts closest to the query, most similar first.
// An empty index yields no results, not an error.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}
	// chromem requires nResults <= collection size.
	if n := ix.col.Count(); n < limit {
		if n == 0 {
			return nil, nil
		}
		limit = n
	}

	emb, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "embed query")
	}

	results, err := ix.col.QueryEmbedding(ctx, emb, limit, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "query index")
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		out = append(out, Result{
			ID:         r.ID,
			Fact:       r.Content,
			Category:   r.Metadata["category"],
			Similarity: r.Similarity,
		})
	}
	return out, nil
}

// Package memory implements the background memory-extraction pipeline.
//
// After a chat exchange completes, the Extractor asks the model (a cheaper,
// smaller call than the chat itself) which durable facts the exchange
// revealed, recovers a JSON array from its free-form output, validates the
// candidates against a closed category set, and appends the survivors to the
// store. The pipeline runs detached from the response path: it is scheduled
// after the user-facing response has been sent, and every failure inside it
// is logged and absorbed, never surfaced or retried.
//
// Architecture:
//   - Store: durable append-only backend (SQLite in memory/store/sqlite)
//   - Indexer: optional semantic index over stored facts (memory/index)
//   - Embedder: text-to-vector conversion for the index (memory/embedder)
//   - Extractor: orchestrates prompt, model call, parse, validate, insert
package memory

//go:build !onnx

package main

import (
	"github.com/charmbracelet/log"

	"github.com/askjudy/relay/config"
	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/embedder/mock"
)

// newEmbedder picks the embedder for the semantic index. The default build
// only carries the deterministic mock; build with -tags onnx to use the
// local MiniLM embedder.
func newEmbedder(cfg *config.Config, logger *log.Logger) (memory.Embedder, error) {
	if cfg.MemoryIndex == "onnx" {
		logger.Warn("MEMORY_INDEX=onnx requires a binary built with -tags onnx, using mock embedder")
	}
	return mock.New(), nil
}

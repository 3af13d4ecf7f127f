//go:build onnx

package main

import (
	"github.com/charmbracelet/log"

	"github.com/askjudy/relay/config"
	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/embedder/mock"
	"github.com/askjudy/relay/memory/embedder/onnx"
)

func newEmbedder(cfg *config.Config, logger *log.Logger) (memory.Embedder, error) {
	if cfg.MemoryIndex != "onnx" {
		return mock.New(), nil
	}
	return onnx.New(onnx.Config{
		ModelPath:     cfg.OnnxModelPath,
		TokenizerPath: cfg.OnnxTokenizer,
	})
}

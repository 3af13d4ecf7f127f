package main

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/askjudy/relay/config"
	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/index"
	"github.com/askjudy/relay/memory/store/sqlite"
	"github.com/askjudy/relay/server"
)

func main() {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
		TimeFormat:      time.Kitchen,
	})

	cfg := config.Load()
	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, chat requests will get a configuration error")
	}

	var (
		store     *sqlite.Store
		extractor *memory.Extractor
		idx       *index.Index
	)

	if cfg.DBPath == "" {
		logger.Warn("DB_PATH not set, persistence disabled")
	} else {
		var err error
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			logger.Fatal("Failed to open store", "error", err, "path", cfg.DBPath)
		}
		defer store.Close()
		logger.Info("Store ready", "path", cfg.DBPath)

		if cfg.MemoryIndex != "off" && cfg.MemoryIndex != "" {
			embedder, err := newEmbedder(cfg, logger)
			if err != nil {
				logger.Fatal("Failed to create embedder", "error", err)
			}
			idx, err = index.New(embedder)
			if err != nil {
				logger.Fatal("Failed to create semantic index", "error", err)
			}
			logger.Info("Semantic index enabled", "embedder", cfg.MemoryIndex)
		}

		client := memory.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL)
		opts := []memory.ExtractorOption{memory.WithModel(cfg.ExtractionModel)}
		if idx != nil {
			opts = append(opts, memory.WithIndexer(idx))
		}
		extractor = memory.NewExtractor(client, store, logger.WithPrefix("memory"), opts...)
	}

	srv, err := server.New(cfg, logger, store, extractor, idx)
	if err != nil {
		logger.Fatal("Failed to build server", "error", err)
	}

	logger.Info("Ask Judy is running", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Handler()); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}

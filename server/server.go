// Package server wires the HTTP surface of the relay: the chat proxy, the
// profile and memory endpoints, and static file serving for the client.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto"
	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/askjudy/relay/config"
	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/index"
	"github.com/askjudy/relay/memory/store/sqlite"
)

// Server hosts the relay endpoints. The store, extractor and index are all
// optional: a nil store disables every persistence feature without touching
// the chat path, and a nil index only empties the search surface.
type Server struct {
	cfg          *config.Config
	logger       *log.Logger
	httpClient   *http.Client
	store        *sqlite.Store
	extractor    *memory.Extractor
	index        *index.Index
	profileCache *ristretto.Cache
}

// New creates a server. store, extractor and idx may be nil.
func New(cfg *config.Config, logger *log.Logger, store *sqlite.Store, extractor *memory.Extractor, idx *index.Index) (*Server, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:          cfg,
		logger:       logger,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		store:        store,
		extractor:    extractor,
		index:        idx,
		profileCache: cache,
	}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	}).Handler)

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/profile", s.handleGetProfile)
	r.Put("/api/profile", s.handleReplaceProfile)
	r.Get("/api/memories", s.handleListMemories)
	r.Get("/api/memories/search", s.handleSearchMemories)
	r.Delete("/api/memories/{id}", s.handleDeleteMemory)
	r.Get("/health", s.handleHealth)
	r.NotFound(s.handleStatic)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatic serves the client app, falling back to index.html for
// client-side routes.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(s.cfg.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

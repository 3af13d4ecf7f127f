package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/index"
	"github.com/askjudy/relay/memory/store/sqlite"
)

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, []memory.Memory{})
		return
	}

	memories, err := s.store.ListMemories(r.Context(), memory.DefaultOwner)
	if err != nil {
		s.logger.Error("Failed to list memories", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list memories")
		return
	}
	s.writeJSON(w, http.StatusOK, memories)
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id := chi.URLParam(r, "id")
	err := s.store.DeleteMemory(r.Context(), memory.DefaultOwner, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "memory not found")
		return
	}
	if err != nil {
		s.logger.Error("Failed to delete memory", "error", err, "id", id)
		s.writeError(w, http.StatusInternalServerError, "failed to delete memory")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchMemories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	if s.index == nil {
		s.writeJSON(w, http.StatusOK, []index.Result{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := s.index.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("Memory search failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "memory search failed")
		return
	}
	if results == nil {
		results = []index.Result{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

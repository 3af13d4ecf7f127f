package server

import (
	"encoding/json"
	"net/http"

	"github.com/askjudy/relay/memory"
	"github.com/askjudy/relay/memory/store/sqlite"
)

const profileCacheKey = "profile"

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, &sqlite.Profile{})
		return
	}

	if cached, ok := s.profileCache.Get(profileCacheKey); ok {
		s.writeJSON(w, http.StatusOK, cached.(*sqlite.Profile))
		return
	}

	profile, err := s.store.GetProfile(r.Context(), memory.DefaultOwner)
	if err != nil {
		s.logger.Error("Failed to load profile", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	s.profileCache.Set(profileCacheKey, profile, 1)
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleReplaceProfile(w http.ResponseWriter, r *http.Request) {
	var profile sqlite.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile body")
		return
	}

	// Persistence disabled: accept and discard.
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, &profile)
		return
	}

	if err := s.store.ReplaceProfile(r.Context(), memory.DefaultOwner, &profile); err != nil {
		s.logger.Error("Failed to replace profile", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	s.profileCache.Del(profileCacheKey)
	s.writeJSON(w, http.StatusOK, &profile)
}

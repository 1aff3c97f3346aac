package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/Jeet1922/movie-rec-dashboard/internal/dataset"
	"github.com/Jeet1922/movie-rec-dashboard/internal/source"
)

// handleHealth reports liveness and whether a dataset is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sess := s.current()

	resp := map[string]any{
		"status": "ok",
		"loaded": sess != nil,
	}
	if sess != nil {
		resp["records"] = sess.store.Len()
		resp["loaded_at"] = sess.loadedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, r, resp)
}

// handleRecords returns the full ordered record list.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, sess.store.Records())
}

// handleProfiles returns the derived per-user profile map.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, sess.profiles)
}

// handleUsers returns the distinct user IDs in first-encounter order.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, sess.store.Users())
}

// handleGenres returns the genre selector values: the "all" sentinel
// followed by the distinct genres in first-encounter order.
func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	genres := append([]string{dataset.GenreAll}, sess.store.Genres()...)
	writeJSON(w, r, genres)
}

// handleReload re-acquires and re-ingests the dataset. Acquisition and
// empty-dataset failures map to distinct status codes so the frontend can
// give different guidance.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		var acqErr *source.AcquisitionError
		switch {
		case errors.As(err, &acqErr):
			writeError(w, r, http.StatusBadGateway, err.Error())
		case errors.Is(err, dataset.ErrEmptyDataset):
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	sess := s.current()
	writeJSON(w, r, map[string]any{
		"records": sess.store.Len(),
		"users":   len(sess.store.Users()),
	})
}

// handleHistory returns recent ingestion attempts, newest first. With
// history persistence disabled the list is empty.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 20)
	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load ingestion history")
		return
	}
	writeJSON(w, r, entries)
}

// requireSession fetches the active session or answers 503 when no
// ingestion has succeeded yet.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess := s.current()
	if sess == nil {
		writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded")
		return nil, false
	}
	return sess, true
}

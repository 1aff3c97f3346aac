package web

// session.go owns the ingestion lifecycle around the immutable record
// store. A session is one successful ingestion: the store plus the
// profiles derived from it. Reloading builds a whole new session and swaps
// the pointer; nothing ever mutates a live session, so request handlers
// can read one without coordination beyond the pointer swap.

import (
	"context"
	"time"

	"github.com/Jeet1922/movie-rec-dashboard/internal/dataset"
	"github.com/Jeet1922/movie-rec-dashboard/internal/history"
	"github.com/Jeet1922/movie-rec-dashboard/internal/logging"
)

type session struct {
	store    *dataset.Store
	profiles map[string]dataset.Profile
	loadedAt time.Time
}

// current returns the active session, or nil when no ingestion has
// succeeded yet.
func (s *Server) current() *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Reload acquires the dataset from the configured source, ingests it, and
// swaps in the resulting session. On failure the previous session (if any)
// stays active and the error is returned verbatim: an acquisition failure
// and an empty dataset remain distinguishable for the caller. Every
// attempt, failed or not, is recorded in the ingestion history.
func (s *Server) Reload(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	start := time.Now()

	store, err := s.ingestOnce(ctx)

	entry := history.Entry{
		Source:   s.source.Describe(),
		Duration: time.Since(start),
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		stats := store.Stats()
		entry.TotalRows = stats.TotalRows
		entry.Accepted = stats.Accepted
		entry.Rejected = stats.Rejected
		entry.UserCount = len(store.Users())
	}
	if histErr := s.history.RecordIngest(ctx, entry); histErr != nil {
		logger.Warn("failed to record ingestion history", "error", histErr)
	}

	if err != nil {
		logger.Error("ingestion failed", "source", s.source.Describe(), "error", err)
		return err
	}

	next := &session{
		store:    store,
		profiles: dataset.BuildProfiles(store),
		loadedAt: start,
	}
	s.mu.Lock()
	s.session = next
	s.mu.Unlock()

	stats := store.Stats()
	logger.Info("dataset loaded",
		"source", s.source.Describe(),
		"records", stats.Accepted,
		"rejected", stats.Rejected,
		"users", len(store.Users()),
		"bytes", stats.BytesRead,
		"duration", time.Since(start),
	)
	return nil
}

func (s *Server) ingestOnce(ctx context.Context) (*dataset.Store, error) {
	rc, _, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return dataset.Ingest(rc)
}

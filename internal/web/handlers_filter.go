package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Jeet1922/movie-rec-dashboard/internal/dataset"
)

// FilterResponse carries a filtered subset together with the summaries
// computed over it. Distributions always describe the returned subset,
// never the whole store.
type FilterResponse struct {
	Records            []dataset.Record       `json:"records"`
	Total              int                    `json:"total"`
	GenreDistribution  []dataset.GenreCount   `json:"genre_distribution"`
	RatingDistribution []dataset.RatingBucket `json:"rating_distribution"`
}

// handleFilter applies the criteria from the query string and returns the
// subset plus its distributions.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	criteria, err := s.parseCriteria(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records := criteria.Apply(sess.store)
	writeJSON(w, r, FilterResponse{
		Records:            records,
		Total:              len(records),
		GenreDistribution:  dataset.GenreDistribution(records),
		RatingDistribution: dataset.RatingDistribution(records),
	})
}

// handleExport streams the filtered subset as a CSV attachment with a
// date-stamped filename.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	criteria, err := s.parseCriteria(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records := criteria.Apply(sess.store)

	filename := dataset.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := dataset.Export(w, records); err != nil {
		// Headers are already sent; just log.
		logError(r, "export write failed", err)
	}
}

// parseCriteria builds filter criteria from query parameters. The limit
// defaults to the configured value, is rejected above the configured
// ceiling, and non-positive values pass through (the core treats them as
// an empty result).
func (s *Server) parseCriteria(r *http.Request) (dataset.Criteria, error) {
	criteria := dataset.Criteria{
		User:   r.URL.Query().Get("user"),
		Genre:  r.URL.Query().Get("genre"),
		Search: r.URL.Query().Get("search"),
		Limit:  s.dataset.DefaultLimit,
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return dataset.Criteria{}, fmt.Errorf("invalid limit %q", raw)
		}
		criteria.Limit = limit
	}
	if criteria.Limit > s.dataset.MaxLimit {
		return dataset.Criteria{}, fmt.Errorf("limit %d exceeds maximum %d", criteria.Limit, s.dataset.MaxLimit)
	}

	if err := s.validate.Struct(criteria); err != nil {
		return dataset.Criteria{}, fmt.Errorf("invalid filter criteria: %w", err)
	}
	return criteria, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

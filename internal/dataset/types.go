package dataset

// Record is one validated user/movie recommendation row.
//
// UserID and Title are required; a candidate row missing either is dropped
// during ingestion. All other fields are best-effort: Genre and Reason are
// empty when the source column was blank or unmapped, and Rating/Year are
// nil when the source value did not parse to a finite number.
type Record struct {
	UserID  string   `json:"user_id"`
	MovieID string   `json:"movie_id"`
	Title   string   `json:"movie_title"`
	Genre   string   `json:"genre,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Rating  *float64 `json:"predicted_rating,omitempty"`
	Year    *int     `json:"year,omitempty"`

	// Extra holds values from unrecognized columns, keyed by the cleaned
	// header name. These are carried verbatim for display only and are
	// ignored by every downstream component.
	Extra map[string]string `json:"-"`
}

// Rated reports whether the record carries a predicted rating.
func (r Record) Rated() bool { return r.Rating != nil }

// Profile is the per-user aggregate derived from all of that user's records.
type Profile struct {
	UserID              string   `json:"user_id"`
	RecommendationCount int      `json:"recommendation_count"`
	// AverageRating is the mean of the predicted ratings present for the
	// user, or exactly 0 when no rated records exist (never NaN).
	AverageRating float64 `json:"average_rating"`
	// TopGenres holds at most 3 genre names by descending frequency.
	// Ties keep first-encounter order from the original record sequence.
	TopGenres []string `json:"top_genres"`

	// Placeholder attributes for display. Derived deterministically from
	// UserID so repeated aggregation runs are reproducible.
	Location string `json:"location"`
	Age      int    `json:"age"`
	JoinYear int    `json:"join_year"`
}

// GenreAll is the genre criteria sentinel meaning "no genre constraint".
const GenreAll = "all"

// Criteria describes one filter selection. The zero value passes every
// record through (subject to Limit).
type Criteria struct {
	// User restricts to records with this exact user_id. Empty = any user.
	User string `json:"user" validate:"max=128"`
	// Genre restricts to records with this exact genre. Empty or the
	// GenreAll sentinel = any genre.
	Genre string `json:"genre" validate:"max=128"`
	// Search is matched case-insensitively against movie titles.
	Search string `json:"search" validate:"max=256"`
	// Limit caps the result size and is applied after all predicates.
	// A zero or negative limit yields an empty result.
	Limit int `json:"limit" validate:"lte=100000"`
}

// GenreCount is one (genre, count) pair of a genre distribution.
// Distributions are ordered slices, not maps: ordering is first-encounter
// order within the summarized subset and is part of the contract.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// RatingBucket is one populated bucket of a rating distribution.
type RatingBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

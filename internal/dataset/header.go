package dataset

// header.go maps arbitrary source column names onto the canonical record
// fields. Real exports of the recommendation model disagree on header
// spelling ("UserID", "user_id", "User ID", ...), so matching collapses
// case, whitespace, underscores and dashes before the alias lookup. That
// same collapsing is what makes the exporter's pretty header row
// ("User ID", "Movie Title", ...) re-ingestible.

import "strings"

// Canonical field names, used as keys in the alias table and as the
// identity of mapped columns.
const (
	FieldUserID  = "user_id"
	FieldMovieID = "movie_id"
	FieldTitle   = "movie_title"
	FieldGenre   = "genre"
	FieldReason  = "reason"
	FieldRating  = "predicted_rating"
	FieldYear    = "year"
)

// headerAliases lists the accepted spellings per canonical field.
// Entries are compared in collapsed form (see collapseHeader).
var headerAliases = map[string][]string{
	FieldUserID:  {"user_id", "userid", "user"},
	FieldMovieID: {"recommended_movie_id", "movie_id", "movieid", "id"},
	FieldTitle:   {"recommended_movie_title", "movie_title", "title", "movie"},
	FieldGenre:   {"genre", "genres", "category"},
	FieldReason:  {"reason", "recommendation_reason", "explanation"},
	FieldRating:  {"predicted_rating", "rating", "score", "prediction"},
	FieldYear:    {"year", "release_year", "movie_year"},
}

// aliasIndex maps collapsed alias -> canonical field, built once at init.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for field, aliases := range headerAliases {
		for _, a := range aliases {
			idx[collapseHeader(a)] = field
		}
	}
	return idx
}()

// ColumnMapping describes what a single source column position maps to.
// Exactly one of Field (a canonical name) or Extension (the cleaned raw
// header of an unrecognized column) is set.
type ColumnMapping struct {
	Field     string
	Extension string
}

// HeaderMapping maps each source column position to its destination.
type HeaderMapping []ColumnMapping

// MapHeader resolves a raw header row into a HeaderMapping using the alias
// table. Unrecognized headers are preserved verbatim as extension columns;
// they are carried on records but ignored by every downstream component.
func MapHeader(header []string) HeaderMapping {
	mapping := make(HeaderMapping, len(header))
	for i, raw := range header {
		cleaned := CleanCell(raw)
		if field, ok := aliasIndex[collapseHeader(cleaned)]; ok {
			mapping[i] = ColumnMapping{Field: field}
		} else {
			mapping[i] = ColumnMapping{Extension: cleaned}
		}
	}
	return mapping
}

// HasField reports whether any column maps to the given canonical field.
func (m HeaderMapping) HasField(field string) bool {
	for _, cm := range m {
		if cm.Field == field {
			return true
		}
	}
	return false
}

// collapseHeader lowercases a header name and strips the separators that
// vary between export styles.
func collapseHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, s)
}

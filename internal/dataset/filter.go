package dataset

import "strings"

// Apply filters the store through the criteria's predicates and truncates
// the result to the limit. Predicates compose as one pass in store order,
// and the limit is applied last so it caps matches rather than candidates.
//
// The result is always non-nil, so an empty match set stays distinguishable
// from "no filtering performed yet" (a nil slice at the caller).
func (c Criteria) Apply(store *Store) []Record {
	matched := make([]Record, 0, store.Len())
	if c.Limit <= 0 {
		return matched
	}

	search := strings.ToLower(c.Search)
	for _, rec := range store.Records() {
		if c.User != "" && rec.UserID != c.User {
			continue
		}
		if c.genreActive() && rec.Genre != c.Genre {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.Title), search) {
			continue
		}
		matched = append(matched, rec)
	}

	if len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}
	return matched
}

// genreActive reports whether the genre predicate constrains anything.
// An empty selection and the GenreAll sentinel both mean "any genre".
func (c Criteria) genreActive() bool {
	return c.Genre != "" && !strings.EqualFold(c.Genre, GenreAll)
}

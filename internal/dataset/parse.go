package dataset

// parse.go converts one raw CSV row into a candidate Record using a
// HeaderMapping. Numeric fields are best-effort: a value that does not
// parse to a finite number becomes an absent field, never a row error.
// The only way a row is rejected is the validation rule in validRecord.

import (
	"math"
	"strconv"
	"strings"
)

// CleanCell removes common CSV artifacts from a cell value:
//   - surrounding whitespace
//   - Excel formula prefix (="value")
//   - surrounding single or double quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// parseRecord builds a candidate Record from one data row. Columns beyond
// the header width are dropped; mapped columns past the end of a short row
// are treated as absent.
func parseRecord(row []string, mapping HeaderMapping) Record {
	var rec Record
	for i, cm := range mapping {
		if i >= len(row) {
			break
		}
		val := CleanCell(row[i])

		if cm.Extension != "" {
			if val != "" {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[cm.Extension] = val
			}
			continue
		}

		switch cm.Field {
		case FieldUserID:
			rec.UserID = val
		case FieldMovieID:
			rec.MovieID = val
		case FieldTitle:
			rec.Title = val
		case FieldGenre:
			rec.Genre = val
		case FieldReason:
			rec.Reason = val
		case FieldRating:
			rec.Rating = parseFiniteFloat(val)
		case FieldYear:
			rec.Year = parseInt(val)
		}
	}
	return rec
}

// validRecord is the single acceptance rule for the record store: both
// user_id and movie_title must be non-empty after normalization.
func validRecord(rec Record) bool {
	return rec.UserID != "" && rec.Title != ""
}

// parseFiniteFloat parses a float, returning nil for empty input, parse
// failures, and non-finite values (ParseFloat accepts "NaN" and "Inf").
func parseFiniteFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseInt parses an integer, returning nil for empty or unparseable input.
func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &i
}

package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// exportHeader is the fixed header row of every export. Each name resolves
// back to its canonical field through the alias table, so exported files
// can be re-ingested unchanged (round-trip).
var exportHeader = []string{
	"User ID", "Movie ID", "Movie Title", "Genre", "Reason", "Predicted Rating", "Year",
}

// Export serializes a record subset as delimited text in subset order.
// Every field is individually quote-wrapped, absent optional fields
// serialize to an empty quoted string, and numeric fields use their
// natural decimal representation.
func Export(w io.Writer, records []Record) error {
	if err := writeRow(w, exportHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.UserID,
			rec.MovieID,
			rec.Title,
			rec.Genre,
			rec.Reason,
			formatRating(rec.Rating),
			formatYear(rec.Year),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// ExportFilename returns the date-stamped attachment name for a download
// started at the given time.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("movie_recommendations_%s.csv", t.Format("2006-01-02"))
}

func writeRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatYear(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

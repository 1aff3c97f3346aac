package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDataset is returned when ingestion produces zero valid records:
// the stream had no rows at all, no data rows after the header, or every
// data row was rejected by validation. It is deliberately distinct from an
// acquisition failure so callers can give different guidance.
var ErrEmptyDataset = errors.New("dataset contains no valid records")

// Ingest reads a delimited-text dataset from r and builds the session's
// record store. The first non-blank row is the header; it is resolved
// through the alias table, and every following row is parsed, cleaned, and
// validated independently. Rows missing a user_id or movie_title are
// dropped, not errored. Input is wrapped with BOM skipping and UTF-8
// sanitization, so Windows exports and mixed encodings ingest cleanly.
//
// Ingest is all-or-nothing at the dataset level: it returns a non-nil
// store only when at least one record was accepted, and ErrEmptyDataset
// otherwise. There is no partial "succeeded with warnings" state; per-row
// rejects are visible in the store's IngestStats.
func Ingest(r io.Reader) (*Store, error) {
	counting := newCountingReader(newUTF8Sanitizer(newBOMSkippingReader(r)))

	cr := csv.NewReader(counting)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := readHeaderRow(cr)
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	mapping := MapHeader(header)

	store := &Store{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		store.stats.TotalRows++
		if isBlankRow(row) {
			store.stats.Rejected++
			continue
		}

		rec := parseRecord(row, mapping)
		if !validRecord(rec) {
			store.stats.Rejected++
			continue
		}
		store.records = append(store.records, rec)
		store.stats.Accepted++
	}

	store.stats.BytesRead = counting.bytesRead
	if store.stats.Accepted == 0 {
		return nil, ErrEmptyDataset
	}
	return store, nil
}

// readHeaderRow returns the first row with any non-blank cell. Some
// exports lead with blank padding rows before the real header.
func readHeaderRow(cr *csv.Reader) ([]string, error) {
	for {
		row, err := cr.Read()
		if err != nil {
			return nil, err
		}
		if !isBlankRow(row) {
			return row, nil
		}
	}
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

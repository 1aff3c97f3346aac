package dataset

// Store is the immutable collection of validated records for a session.
// It is built once by Ingest and never modified afterwards; consumers that
// want a different view derive a subset with Criteria.Apply.
type Store struct {
	records []Record
	stats   IngestStats
}

// IngestStats describes one ingestion pass over a dataset.
type IngestStats struct {
	// TotalRows is the number of data rows seen after the header,
	// including rejected and blank rows.
	TotalRows int
	// Accepted is the number of rows admitted to the store.
	Accepted int
	// Rejected is the number of rows dropped for a missing user_id or
	// movie_title.
	Rejected int
	// BytesRead is the size of the consumed byte stream.
	BytesRead int64
}

// Records returns the validated records in original input order.
// The returned slice is shared; callers must not modify it.
func (s *Store) Records() []Record {
	return s.records
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Stats returns the ingestion statistics captured when the store was built.
func (s *Store) Stats() IngestStats {
	return s.stats
}

// Users returns the distinct user IDs in first-encounter order.
func (s *Store) Users() []string {
	seen := make(map[string]bool, len(s.records))
	var users []string
	for _, rec := range s.records {
		if !seen[rec.UserID] {
			seen[rec.UserID] = true
			users = append(users, rec.UserID)
		}
	}
	return users
}

// Genres returns the distinct non-empty genres in first-encounter order.
// This feeds the genre selector in the display layer.
func (s *Store) Genres() []string {
	seen := make(map[string]bool)
	var genres []string
	for _, rec := range s.records {
		if rec.Genre != "" && !seen[rec.Genre] {
			seen[rec.Genre] = true
			genres = append(genres, rec.Genre)
		}
	}
	return genres
}

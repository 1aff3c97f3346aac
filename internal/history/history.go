// Package history records ingestion attempts in PostgreSQL.
//
// This is operational metadata (what was loaded, when, with what outcome),
// not session state: the record store itself always lives in memory and is
// rebuilt from the source on every ingestion. History is optional; with a
// nil pool every operation is a no-op, so deployments without a database
// lose nothing but the audit trail.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists ingestion history entries.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a history store. A nil pool disables the store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Enabled reports whether history persistence is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Entry is one recorded ingestion attempt, successful or not.
type Entry struct {
	ID         uuid.UUID     `json:"id"`
	Source     string        `json:"source"`
	TotalRows  int           `json:"total_rows"`
	Accepted   int           `json:"accepted"`
	Rejected   int           `json:"rejected"`
	UserCount  int           `json:"user_count"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ms"`
	IngestedAt time.Time     `json:"ingested_at"`
}

// EnsureSchema creates the history table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ingest_history (
			id          UUID PRIMARY KEY,
			source      TEXT NOT NULL,
			total_rows  INTEGER NOT NULL,
			accepted    INTEGER NOT NULL,
			rejected    INTEGER NOT NULL,
			user_count  INTEGER NOT NULL,
			error       TEXT,
			duration_ms BIGINT NOT NULL,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure ingest_history schema: %w", err)
	}
	return nil
}

// RecordIngest inserts one ingestion attempt. The entry ID and timestamp
// are assigned here.
func (s *Store) RecordIngest(ctx context.Context, e Entry) error {
	if !s.Enabled() {
		return nil
	}

	errText := pgtype.Text{String: e.Error, Valid: e.Error != ""}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ingest_history
			(id, source, total_rows, accepted, rejected, user_count, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), e.Source, e.TotalRows, e.Accepted, e.Rejected,
		e.UserCount, errText, e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record ingest: %w", err)
	}
	return nil
}

// Recent returns the most recent ingestion attempts, newest first.
// With history disabled it returns an empty list.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !s.Enabled() {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, source, total_rows, accepted, rejected, user_count,
		       error, duration_ms, ingested_at
		FROM ingest_history
		ORDER BY ingested_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query ingest history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e          Entry
			errText    pgtype.Text
			durationMs int64
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.TotalRows, &e.Accepted,
			&e.Rejected, &e.UserCount, &errText, &durationMs, &e.IngestedAt); err != nil {
			return nil, fmt.Errorf("scan ingest history row: %w", err)
		}
		if errText.Valid {
			e.Error = errText.String
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingest history: %w", err)
	}
	return entries, nil
}

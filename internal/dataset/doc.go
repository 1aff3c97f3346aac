// Package dataset provides the business logic for the recommendation
// dataset: ingestion, header normalization, row validation, per-user
// profile aggregation, filtering, distribution summaries, and CSV export.
//
// This package has no UI or transport dependencies and can be used by web
// handlers, CLI tools, or tests without modification.
//
// # Pipeline
//
// Raw delimited text flows through the package in one direction:
//
//	io.Reader -> Ingest -> *Store -> BuildProfiles
//	                              -> Criteria.Apply -> GenreDistribution
//	                                                -> RatingDistribution
//	                                                -> Export
//
// A [Store] is built once per ingestion and never mutated afterwards.
// Every derivation (profiles, filtered subsets, distributions, export) is a
// pure function of the store and its inputs, so recomputing with identical
// inputs always yields identical output. Callers that want a different view
// derive a new subset; nothing modifies the store in place.
//
// # Error Handling
//
// Ingestion has exactly two fatal conditions: the byte stream could not be
// obtained (an acquisition error, raised by the caller before Ingest is
// reached) and [ErrEmptyDataset] (zero valid records after validation).
// Per-field numeric parse failures degrade to absent fields and never abort
// a row. Filtering, aggregation, and export have no failure modes.
package dataset

// Package repositories implements SQLite persistence for search history.
//
// Key Implementations:
//   - [SearchRepository] : audit log of search attempts with newest-first listings
//   - [HistoryRecorder] : adapter that lets the search engine persist attempts
//   - [FilterRecords] : fuzzy filtering of stored queries
//
// Sequence numbers provide stable ordering independent of UUIDs and creation timestamps, which can collide at sub-second resolution.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

const searchColumns = "id, query, status, result_count, top_artist, error, source, created_at"

// SearchRepository implements models.Repository[*models.SearchRecord] for search history.
//
// Records are append-only; Delete and Clear remove rows outright.
type SearchRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.SearchRecord] = (*SearchRepository)(nil)

// NewSearchRepository creates a new SearchRepository with the given database connection
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Create inserts record with a generated ID and sequence
func (r *SearchRepository) Create(record *models.SearchRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "searches")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if record.ID() == "" {
		record.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO searches (id, sequence, query, status, result_count, top_artist, error, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID(),
		sequence,
		record.Query(),
		string(record.Status()),
		record.ResultCount(),
		record.TopArtist(),
		record.Error(),
		string(record.Source()),
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}

	return nil
}

// Get retrieves a search record by ID
func (r *SearchRepository) Get(id string) (*models.SearchRecord, error) {
	row := r.db.QueryRow("SELECT "+searchColumns+" FROM searches WHERE id = ?", id)

	record, err := scanSearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: search %s", shared.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns up to limit records, newest first. A limit of zero or less returns every record.
func (r *SearchRepository) List(limit int) ([]*models.SearchRecord, error) {
	query := "SELECT " + searchColumns + " FROM searches ORDER BY sequence DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	records := []*models.SearchRecord{}
	for rows.Next() {
		record, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records
func (r *SearchRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM searches").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count searches: %w", err)
	}
	return n, nil
}

// Delete removes a search record by ID
func (r *SearchRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM searches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: search %s", shared.ErrRecordNotFound, id)
	}

	return nil
}

// Clear removes every record and returns how many were deleted
func (r *SearchRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM searches")
	if err != nil {
		return 0, fmt.Errorf("failed to clear searches: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows]
type scanner interface {
	Scan(dest ...any) error
}

func scanSearch(s scanner) (*models.SearchRecord, error) {
	var (
		id          string
		query       string
		status      string
		resultCount int
		topArtist   string
		errMsg      string
		source      string
		createdAt   time.Time
	)

	err := s.Scan(&id, &query, &status, &resultCount, &topArtist, &errMsg, &source, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan search: %w", err)
	}

	return models.RestoreSearchRecord(
		id,
		query,
		models.SearchStatus(status),
		resultCount,
		topArtist,
		errMsg,
		models.SearchSource(source),
		createdAt,
	), nil
}

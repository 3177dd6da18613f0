// package repositories provides persistence layer implementations for the model types.
//
// Each repository implements models.Repository[T] for a specific entity type.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/desertthunder/artx/internal/shared"
)

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NextSequence advances the single-row counter in <table>_sequence and returns the new value.
//
// Sequence values order rows newest first regardless of clock resolution. They never appear in CLI output.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !tableName.MatchString(table) {
		return 0, fmt.Errorf("%w: table name %q", shared.ErrInvalidArgument, table)
	}

	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)

	var next int
	if err := db.QueryRow(query).Scan(&next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("sequence for %s is not initialized", table)
		}
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}

	return next, nil
}

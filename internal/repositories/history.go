package repositories

import (
	"context"
	"strings"

	"github.com/desertthunder/artx/internal/models"
	"github.com/sahilm/fuzzy"
)

// HistoryRecorder implements tasks.Recorder using SearchRepository.
type HistoryRecorder struct {
	repo *SearchRepository
}

// NewHistoryRecorder creates a new HistoryRecorder with the given repository
func NewHistoryRecorder(repo *SearchRepository) *HistoryRecorder {
	return &HistoryRecorder{repo: repo}
}

// Record stores record unless ctx is already done.
func (h *HistoryRecorder) Record(ctx context.Context, record *models.SearchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.repo.Create(record)
}

// historyIndex implements fuzzy.Source over lowercased queries
type historyIndex struct {
	records []*models.SearchRecord
	lower   []string
}

func newHistoryIndex(records []*models.SearchRecord) *historyIndex {
	lower := make([]string, len(records))
	for i, r := range records {
		lower[i] = strings.ToLower(r.Query())
	}
	return &historyIndex{records: records, lower: lower}
}

func (idx *historyIndex) String(i int) string { return idx.lower[i] }
func (idx *historyIndex) Len() int            { return len(idx.records) }

// FilterRecords returns the records whose query fuzzy-matches pattern, best match first.
// An empty pattern returns records unchanged.
func FilterRecords(records []*models.SearchRecord, pattern string) []*models.SearchRecord {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return records
	}

	idx := newHistoryIndex(records)
	matches := fuzzy.FindFrom(strings.ToLower(pattern), idx)

	filtered := make([]*models.SearchRecord, len(matches))
	for i, m := range matches {
		filtered[i] = idx.records[m.Index]
	}
	return filtered
}

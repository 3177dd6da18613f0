package models

import (
	"fmt"
	"strings"
	"time"
)

// SearchStatus is the outcome of a recorded search.
type SearchStatus string

const (
	SearchOK     SearchStatus = "ok"
	SearchFailed SearchStatus = "failed"
)

// SearchSource identifies which front end issued a search.
type SearchSource string

const (
	SourceCLI    SearchSource = "cli"
	SourceTUI    SearchSource = "tui"
	SourceServer SearchSource = "server"
)

// SearchRecord is one search attempt kept in the history database.
type SearchRecord struct {
	id          string
	query       string
	status      SearchStatus
	resultCount int
	topArtist   string
	errMsg      string
	source      SearchSource
	createdAt   time.Time
}

var _ Model = (*SearchRecord)(nil)

// NewSearchRecord builds a record from the outcome of a search. A non-nil err marks the record failed.
func NewSearchRecord(query string, source SearchSource, artists []Artist, err error) *SearchRecord {
	r := &SearchRecord{
		query:     query,
		status:    SearchOK,
		source:    source,
		createdAt: time.Now().UTC(),
	}

	if err != nil {
		r.status = SearchFailed
		r.errMsg = err.Error()
		return r
	}

	r.resultCount = len(artists)
	if len(artists) > 0 {
		r.topArtist = artists[0].Name
	}
	return r
}

// RestoreSearchRecord rebuilds a record from stored column values.
func RestoreSearchRecord(id, query string, status SearchStatus, resultCount int, topArtist, errMsg string, source SearchSource, createdAt time.Time) *SearchRecord {
	return &SearchRecord{
		id:          id,
		query:       query,
		status:      status,
		resultCount: resultCount,
		topArtist:   topArtist,
		errMsg:      errMsg,
		source:      source,
		createdAt:   createdAt,
	}
}

func (r *SearchRecord) ID() string           { return r.id }
func (r *SearchRecord) SetID(id string)      { r.id = id }
func (r *SearchRecord) Query() string        { return r.query }
func (r *SearchRecord) Status() SearchStatus { return r.status }
func (r *SearchRecord) ResultCount() int     { return r.resultCount }
func (r *SearchRecord) TopArtist() string    { return r.topArtist }
func (r *SearchRecord) Error() string        { return r.errMsg }
func (r *SearchRecord) Source() SearchSource { return r.source }
func (r *SearchRecord) CreatedAt() time.Time { return r.createdAt }
func (r *SearchRecord) Failed() bool         { return r.status == SearchFailed }

// Validate checks required fields and the status enumeration.
func (r *SearchRecord) Validate() error {
	if strings.TrimSpace(r.query) == "" {
		return fmt.Errorf("query is required")
	}
	switch r.status {
	case SearchOK, SearchFailed:
	default:
		return fmt.Errorf("invalid status %q", r.status)
	}
	if r.resultCount < 0 {
		return fmt.Errorf("result count must be non-negative")
	}
	return nil
}

// searchRecordJSON is the exported shape of a [SearchRecord].
type searchRecordJSON struct {
	ID          string       `json:"id"`
	Query       string       `json:"query"`
	Status      SearchStatus `json:"status"`
	ResultCount int          `json:"result_count"`
	TopArtist   string       `json:"top_artist,omitempty"`
	Error       string       `json:"error,omitempty"`
	Source      SearchSource `json:"source"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Export returns a JSON-friendly snapshot of the record.
func (r *SearchRecord) Export() any {
	return searchRecordJSON{
		ID:          r.id,
		Query:       r.query,
		Status:      r.status,
		ResultCount: r.resultCount,
		TopArtist:   r.topArtist,
		Error:       r.errMsg,
		Source:      r.source,
		CreatedAt:   r.createdAt,
	}
}

// package tasks implements asynchronous artist searches.
//
// The core abstraction is Engine, which dispatches single searches and batches.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
)

// Result is the single resolution of a dispatched search.
type Result struct {
	Seq     uint64          // Dispatch order; higher is newer
	Query   string          // Query as submitted
	Artists []models.Artist // Matching artists (nil on error)
	Err     error           // Validation, auth, or search failure
}

// OK reports whether the search succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// BatchOpts contains configuration for batch searches.
type BatchOpts struct {
	NumWorkers int // Concurrent workers (default: 4, max: 10)
}

// BatchResult contains the results of a batch search in input order.
type BatchResult struct {
	Results    []Result
	Succeeded  int
	Failed     int
	TotalCount int
}

// Recorder persists an audit record of a search attempt.
type Recorder interface {
	Record(ctx context.Context, record *models.SearchRecord) error
}

// Engine defines the asynchronous search operations.
type Engine interface {
	// Search dispatches one search. The returned channel yields exactly one [Result] and is then closed.
	Search(ctx context.Context, query string, progress chan<- ProgressUpdate) <-chan Result

	// Batch runs every query through a worker pool and waits for all of them.
	Batch(ctx context.Context, queries []string, opts BatchOpts, progress chan<- ProgressUpdate) (*BatchResult, error)
}

// Explorer implements [Engine] on top of a [services.Service].
type Explorer struct {
	service  services.Service
	recorder Recorder
	source   models.SearchSource
	logger   *log.Logger
	seq      atomic.Uint64
}

// NewExplorer creates an Explorer. recorder may be nil to disable history.
func NewExplorer(service services.Service, recorder Recorder, source models.SearchSource, logger *log.Logger) *Explorer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Explorer{
		service:  service,
		recorder: recorder,
		source:   source,
		logger:   logger,
	}
}

// Latest returns the sequence number of the most recently dispatched search.
func (e *Explorer) Latest() uint64 {
	return e.seq.Load()
}

// IsLatest reports whether res belongs to the most recently dispatched search.
func (e *Explorer) IsLatest(res Result) bool {
	return res.Seq == e.seq.Load()
}

// Search dispatches query on a new goroutine.
//
// Overlapping calls are independent; consumers that only want the newest answer should discard results for which [Explorer.IsLatest] is false.
func (e *Explorer) Search(ctx context.Context, query string, progress chan<- ProgressUpdate) <-chan Result {
	seq := e.seq.Add(1)
	out := make(chan Result, 1)

	var once sync.Once
	resolve := func(res Result) {
		once.Do(func() {
			out <- res
			close(out)
		})
	}

	go func() {
		resolve(e.safeRun(ctx, seq, query, progress))
	}()

	return out
}

// Batch runs queries concurrently and returns their results in input order.
func (e *Explorer) Batch(ctx context.Context, queries []string, opts BatchOpts, progress chan<- ProgressUpdate) (*BatchResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: search service not initialized", shared.ErrServiceUnavailable)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries to search", shared.ErrMissingArgument)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.NumWorkers > len(queries) {
		opts.NumWorkers = len(queries)
	}

	result := &BatchResult{
		Results:    make([]Result, len(queries)),
		TotalCount: len(queries),
	}

	type job struct {
		index int
		query string
	}

	jobs := make(chan job, len(queries))
	type indexed struct {
		index int
		res   Result
	}
	results := make(chan indexed, len(queries))

	e.sendProgress(progress, batchStartedUpdate(len(queries), opts.NumWorkers))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				seq := e.seq.Add(1)
				if err := ctx.Err(); err != nil {
					results <- indexed{j.index, Result{Seq: seq, Query: j.query, Err: err}}
					continue
				}
				results <- indexed{j.index, e.safeRun(ctx, seq, j.query, nil)}
			}
		}()
	}

	for i, q := range queries {
		jobs <- job{index: i, query: q}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for r := range results {
		completed++
		result.Results[r.index] = r.res
		if r.res.OK() {
			result.Succeeded++
		} else {
			result.Failed++
		}
		e.sendProgress(progress, batchResultUpdate(completed, len(queries), r.res))
	}

	return result, nil
}

// safeRun is [Explorer.run] with a service panic turned into a failed Result.
func (e *Explorer) safeRun(ctx context.Context, seq uint64, query string, progress chan<- ProgressUpdate) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("search panicked", "query", query, "panic", r)
			res = Result{Seq: seq, Query: query, Err: fmt.Errorf("search panicked: %v", r)}
		}
	}()
	return e.run(ctx, seq, query, progress)
}

func (e *Explorer) run(ctx context.Context, seq uint64, query string, progress chan<- ProgressUpdate) Result {
	res := Result{Seq: seq, Query: query}

	if e.service == nil {
		res.Err = fmt.Errorf("%w: search service not initialized", shared.ErrServiceUnavailable)
		e.sendProgress(progress, failedUpdate(query, res.Err))
		return res
	}

	if strings.TrimSpace(query) == "" {
		res.Err = shared.ErrEmptyQuery
		e.sendProgress(progress, failedUpdate(query, res.Err))
		return res
	}

	e.sendProgress(progress, searchingUpdate(query, e.service.Name()))

	artists, err := e.service.SearchArtists(ctx, query)
	if err != nil {
		res.Err = err
		e.logger.Warn("search failed", "query", query, "seq", seq, "error", err)
		e.sendProgress(progress, failedUpdate(query, err))
	} else {
		res.Artists = artists
		e.logger.Debug("search complete", "query", query, "seq", seq, "count", len(artists))
		e.sendProgress(progress, doneUpdate(query, len(artists)))
	}

	e.record(ctx, query, artists, err)
	return res
}

// record writes an audit entry for the attempt. Failures are logged only.
func (e *Explorer) record(ctx context.Context, query string, artists []models.Artist, err error) {
	if e.recorder == nil || errors.Is(err, shared.ErrEmptyQuery) {
		return
	}

	rec := models.NewSearchRecord(query, e.source, artists, err)
	if recErr := e.recorder.Record(context.WithoutCancel(ctx), rec); recErr != nil {
		e.logger.Error("failed to record search", "query", query, "error", recErr)
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Explorer) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

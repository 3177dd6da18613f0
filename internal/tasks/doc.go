// Package tasks runs artist searches off the caller's goroutine with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines two operations:
//
//  1. [Engine.Search] : One search, resolved asynchronously
//     - Runs the composed authenticate-then-search operation on its own goroutine
//     - Delivers exactly one [Result] on the returned channel, which is then closed
//     - Stamps each dispatch with a sequence number so consumers can drop stale results
//
//  2. [Engine.Batch] : Many searches through a worker pool
//     - Fans queries out to a bounded number of workers
//     - Returns results in input order with success and failure counts
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, and a message for display.
// Updates use select with default to prevent blocking.
//
// # Search History
//
// The optional [Recorder] interface persists an audit record of each attempt.
// Recording errors are logged and never change the [Result].
//
// # Implementation
//
// [Explorer] implements [Engine] with dependencies on:
//   - [services.Service] : the Spotify artist search
//   - [Recorder] : Optional persistence layer (repositories.HistoryRecorder)
package tasks

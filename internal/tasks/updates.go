package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a search.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Search Phase = iota
	Done
	Failed
	BatchSearch
)

func (p Phase) String() string {
	switch p {
	case Search:
		return "search"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case BatchSearch:
		return "batch_search"
	default:
		return ""
	}
}

func searchingUpdate(query, service string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Search,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Searching %s for %q...", service, query),
	}
}

func doneUpdate(query string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Found %d artists for %q", count, query),
		Data:    count,
	}
}

func failedUpdate(query string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Failed,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Search for %q failed: %v", query, err),
		Data:    err,
	}
}

func batchStartedUpdate(total, workers int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchSearch,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Searching %d queries with %d workers...", total, workers),
	}
}

func batchResultUpdate(step, total int, res Result) ProgressUpdate {
	if res.Err != nil {
		return ProgressUpdate{
			Phase:   BatchSearch,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Query, res.Err),
		}
	}
	return ProgressUpdate{
		Phase:   BatchSearch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d artists)", step, total, res.Query, len(res.Artists)),
	}
}

package main

import (
	"context"

	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/repositories"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recorded searches, newest first, optionally fuzzy-filtered by query.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.history()
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	filter := cmd.String("filter")

	fetch := limit
	if filter != "" {
		fetch = 0
	}

	records, err := repo.List(fetch)
	if err != nil {
		return err
	}

	if filter != "" {
		records = repositories.FilterRecords(records, filter)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
	}

	r.logger.Debug("listing history", "count", len(records), "filter", filter)

	if cmd.Bool("json") {
		data, err := formatter.ExportHistoryToJSON(records, true)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	}

	data, err := formatter.ExportHistoryToText(records)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// HistoryClear deletes every recorded search.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.history()
	if err != nil {
		return err
	}

	n, err := repo.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("history cleared", "deleted", n)
	return r.writePlain("✓ Cleared %d searches\n", n)
}

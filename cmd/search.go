package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// batchEntry is one query's outcome in a JSON batch export.
type batchEntry struct {
	Query   string          `json:"query"`
	Artists []models.Artist `json:"artists"`
	Error   string          `json:"error,omitempty"`
}

// Search looks up artists by name and prints them in the requested format.
//
// With --file, every line of the file is searched through the worker pool.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if path := cmd.String("file"); path != "" {
		return r.searchBatch(ctx, cmd, path, format)
	}

	query := shared.NormalizeQuery(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return shared.ErrEmptyQuery
	}

	explorer, err := r.explorer(cmd, models.SourceCLI)
	if err != nil {
		return err
	}

	r.logger.Info("searching artists", "query", query)

	progress, stop := r.watchProgress(log.DebugLevel)
	res := <-explorer.Search(ctx, query, progress)
	stop()

	if res.Err != nil {
		return res.Err
	}

	artists := res.Artists
	if cmd.Bool("closest") {
		artists = nil
		if best, ok := formatter.ClosestArtist(res.Query, res.Artists); ok {
			artists = []models.Artist{best}
			if format == formatter.FormatText {
				return r.emit(cmd.String("output"), []byte(formatter.ArtistDetail(best)), 1)
			}
		}
	}

	data, err := formatter.Format(format, res.Query, artists)
	if err != nil {
		return err
	}

	return r.emit(cmd.String("output"), data, len(artists))
}

func (r *Runner) searchBatch(ctx context.Context, cmd *cli.Command, path, format string) error {
	queries, err := readQueries(path)
	if err != nil {
		return err
	}

	explorer, err := r.explorer(cmd, models.SourceCLI)
	if err != nil {
		return err
	}

	progress, stop := r.watchProgress(log.InfoLevel)
	batch, err := explorer.Batch(ctx, queries, tasks.BatchOpts{NumWorkers: cmd.Int("workers")}, progress)
	stop()
	if err != nil {
		return err
	}

	r.logger.Info("batch complete", "total", batch.TotalCount, "succeeded", batch.Succeeded, "failed", batch.Failed)

	data, count, err := renderBatch(format, batch)
	if err != nil {
		return err
	}

	if err := r.emit(cmd.String("output"), data, count); err != nil {
		return err
	}

	if batch.Succeeded == 0 {
		return fmt.Errorf("all %d searches failed: %w", batch.TotalCount, batch.Results[0].Err)
	}
	return nil
}

// renderBatch concatenates each query's rendering. JSON output is a single array.
func renderBatch(format string, batch *tasks.BatchResult) ([]byte, int, error) {
	count := 0

	if format == formatter.FormatJSON {
		entries := make([]batchEntry, len(batch.Results))
		for i, res := range batch.Results {
			entries[i] = batchEntry{Query: res.Query, Artists: res.Artists}
			if res.Artists == nil {
				entries[i].Artists = []models.Artist{}
			}
			if res.Err != nil {
				entries[i].Error = res.Err.Error()
			}
			count += len(res.Artists)
		}
		data, err := shared.MarshalJSON(entries, true)
		return data, count, err
	}

	var buf bytes.Buffer
	for i, res := range batch.Results {
		if i > 0 {
			buf.WriteString("\n")
		}
		if res.Err != nil {
			buf.WriteString(fmt.Sprintf("Search for %q failed: %v\n", res.Query, res.Err))
			continue
		}

		data, err := formatter.Format(format, res.Query, res.Artists)
		if err != nil {
			return nil, 0, err
		}
		buf.Write(data)
		count += len(res.Artists)
	}
	return buf.Bytes(), count, nil
}

// emit writes data to path when set, otherwise to the runner's output.
func (r *Runner) emit(path string, data []byte, count int) error {
	if path == "" {
		return r.writeBytes(data)
	}

	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}
	r.logger.Info("results written", "path", path, "artists", count)
	return r.writePlain("✓ Wrote %d artists to %s\n", count, path)
}

// readQueries returns the non-blank lines of path, skipping # comments.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open query file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := shared.NormalizeQuery(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: %s contains no queries", shared.ErrMissingArgument, path)
	}
	return queries, nil
}

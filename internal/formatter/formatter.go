// package formatter renders artist search results and history to various formats (text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"
)

// queryColumnWidth is the display width of the query column in history text output.
const queryColumnWidth = 24

// Supported output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists the accepted values for a --format flag
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// SearchResponse is the JSON document produced for a completed search.
// The HTTP endpoint returns the same shape.
type SearchResponse struct {
	Query   string          `json:"query"`
	Artists []models.Artist `json:"artists"`
}

// FormatFollowers renders a follower count with thousands separators (e.g., 12,345,678).
func FormatFollowers(n int) string {
	return humanize.Comma(int64(n))
}

// ResultsHeader is the heading shown above a result list.
func ResultsHeader(query string) string {
	return "Showing Results For: " + query
}

// ArtistDetail renders a single artist the way the detail view shows it.
func ArtistDetail(a models.Artist) string {
	var b strings.Builder
	b.WriteString(a.Name + "\n")
	b.WriteString("Followers: " + FormatFollowers(a.Followers) + "\n")
	if a.ImageURL != "" {
		b.WriteString("Image: " + a.ImageURL + "\n")
	} else {
		b.WriteString("Image: (none)\n")
	}
	return b.String()
}

// ClosestArtist returns the artist whose name is the nearest fuzzy match for query.
//
// Ties keep the catalog's order. Reports false when no name contains the query's characters in order.
func ClosestArtist(query string, artists []models.Artist) (models.Artist, bool) {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), names)
	if len(ranks) == 0 {
		return models.Artist{}, false
	}

	sort.Stable(ranks)
	return artists[ranks[0].OriginalIndex], true
}

// ParseFormat resolves a --format value (including the txt and md aliases) to one of [Formats].
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "txt", "":
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Format renders artists in the named format.
func Format(format, query string, artists []models.Artist) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatMarkdown:
		return ExportToMarkdown(query, artists)
	case FormatCSV:
		return ExportToCSV(artists)
	case FormatJSON:
		return ExportToJSON(query, artists, true)
	default:
		return ExportToText(query, artists)
	}
}

// ExportToText renders a numbered list with formatted follower counts
func ExportToText(query string, artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(ResultsHeader(query) + "\n\n")

	if len(artists) == 0 {
		buf.WriteString("No artists found.\n")
		return buf.Bytes(), nil
	}

	for i, a := range artists {
		buf.WriteString(fmt.Sprintf("%d. %s - Followers: %s\n", i+1, a.Name, FormatFollowers(a.Followers)))
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a table with image links
func ExportToMarkdown(query string, artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", ResultsHeader(escapeMarkdown(query))))
	buf.WriteString(fmt.Sprintf("**Artists**: %d\n\n", len(artists)))

	if len(artists) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Artist | Followers | Image |\n")
	buf.WriteString("|---|--------|-----------|-------|\n")
	for i, a := range artists {
		image := ""
		if a.ImageURL != "" {
			image = fmt.Sprintf("![%s](%s)", escapeMarkdown(a.Name), a.ImageURL)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, escapeMarkdown(a.Name), FormatFollowers(a.Followers), image))
	}

	return buf.Bytes(), nil
}

// ExportToCSV converts artists to CSV with columns: Name, Followers, ImageURL
//
// Follower counts are written as plain integers.
func ExportToCSV(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Name", "Followers", "ImageURL"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range artists {
		record := []string{a.Name, strconv.Itoa(a.Followers), a.ImageURL}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders a [SearchResponse]
func ExportToJSON(query string, artists []models.Artist, pretty bool) ([]byte, error) {
	if artists == nil {
		artists = []models.Artist{}
	}
	return shared.MarshalJSON(SearchResponse{Query: query, Artists: artists}, pretty)
}

// ExportHistoryToText renders stored searches newest first with relative timestamps
func ExportHistoryToText(records []*models.SearchRecord) ([]byte, error) {
	var buf bytes.Buffer

	if len(records) == 0 {
		buf.WriteString("No searches recorded.\n")
		return buf.Bytes(), nil
	}

	for _, r := range records {
		outcome := fmt.Sprintf("%d artists", r.ResultCount())
		if r.TopArtist() != "" {
			outcome = fmt.Sprintf("%s, top: %s", outcome, r.TopArtist())
		}
		if r.Failed() {
			outcome = "failed: " + r.Error()
		}

		buf.WriteString(fmt.Sprintf("%-8s %s %s (%s, %s)\n",
			shortID(r.ID()),
			fitWidth(strconv.Quote(r.Query()), queryColumnWidth),
			outcome,
			r.Source(),
			humanize.Time(r.CreatedAt()),
		))
	}

	return buf.Bytes(), nil
}

// ExportHistoryToJSON renders stored searches as a JSON array
func ExportHistoryToJSON(records []*models.SearchRecord, pretty bool) ([]byte, error) {
	exported := make([]any, len(records))
	for i, r := range records {
		exported[i] = r.Export()
	}
	return shared.MarshalJSON(exported, pretty)
}

// WriteExport writes data to path, creating parent directories as needed.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: output path is empty", shared.ErrMissingArgument)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// fitWidth pads or truncates s to exactly width display columns.
func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "...")
	}
	return runewidth.FillRight(s, width)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

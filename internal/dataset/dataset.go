// Package dataset reads and writes the flat search-log file. The file is
// CSV with a required header row; the loader resolves columns by name so
// extra columns and reordered headers are tolerated.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"searchpulse/internal/types"
)

// Required columns. The generator writes a superset (normalized_query,
// session_id); only these six are needed to compute anything.
const (
	ColQuery       = "query"
	ColTimestamp   = "timestamp"
	ColResultCount = "result_count"
	ColClicked     = "clicked"
	ColConverted   = "converted"
	ColCategory    = "category"
)

// Optional columns written by the generator.
const (
	ColNormalizedQuery = "normalized_query"
	ColSessionID       = "session_id"
)

var requiredColumns = []string{
	ColQuery, ColTimestamp, ColResultCount, ColClicked, ColConverted, ColCategory,
}

// timestampFormat is RFC3339 without sub-second precision.
const timestampFormat = time.RFC3339

// Load reads all events from the CSV at path. Schema problems and
// unparseable rows come back as MalformedInputError; a missing file or IO
// failure comes back as the underlying error.
func Load(path string) ([]types.SearchEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width checked against the header below

	header, err := r.Read()
	if err == io.EOF {
		return nil, &types.MalformedInputError{Path: path, Reason: "file is empty, header row required"}
	}
	if err != nil {
		return nil, &types.MalformedInputError{Path: path, Line: 1, Reason: err.Error()}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &types.MalformedInputError{
				Path:   path,
				Line:   1,
				Reason: fmt.Sprintf("missing required column %q", col),
			}
		}
	}

	var events []types.SearchEvent
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &types.MalformedInputError{Path: path, Line: line, Reason: err.Error()}
		}
		if len(record) < len(header) {
			return nil, &types.MalformedInputError{
				Path:   path,
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			}
		}

		ev, err := parseRow(record, idx, path, line)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseRow(record []string, idx map[string]int, path string, line int) (types.SearchEvent, error) {
	fail := func(reason string) (types.SearchEvent, error) {
		return types.SearchEvent{}, &types.MalformedInputError{Path: path, Line: line, Reason: reason}
	}

	ts, err := time.Parse(timestampFormat, record[idx[ColTimestamp]])
	if err != nil {
		return fail(fmt.Sprintf("bad timestamp %q: %v", record[idx[ColTimestamp]], err))
	}

	resultCount, err := strconv.Atoi(record[idx[ColResultCount]])
	if err != nil {
		return fail(fmt.Sprintf("bad result_count %q", record[idx[ColResultCount]]))
	}
	if resultCount < 0 {
		return fail(fmt.Sprintf("negative result_count %d", resultCount))
	}

	clicked, err := parseFlag(record[idx[ColClicked]])
	if err != nil {
		return fail(fmt.Sprintf("bad clicked flag %q", record[idx[ColClicked]]))
	}
	converted, err := parseFlag(record[idx[ColConverted]])
	if err != nil {
		return fail(fmt.Sprintf("bad converted flag %q", record[idx[ColConverted]]))
	}

	ev := types.SearchEvent{
		Query:       record[idx[ColQuery]],
		Timestamp:   ts.UTC(),
		ResultCount: resultCount,
		Clicked:     clicked,
		Converted:   converted,
		Category:    record[idx[ColCategory]],
	}
	if i, ok := idx[ColNormalizedQuery]; ok && i < len(record) {
		ev.NormalizedQuery = record[i]
	}
	if i, ok := idx[ColSessionID]; ok && i < len(record) {
		ev.SessionID = record[i]
	}

	return ev, nil
}

// parseFlag accepts the 0/1 the generator writes plus true/false for
// hand-edited files.
func parseFlag(s string) (bool, error) {
	switch s {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	}
	return false, fmt.Errorf("not a flag value: %q", s)
}

// Write saves events as CSV at path. The file is written to a temp file in
// the same directory and renamed into place so a crash never leaves a
// truncated dataset behind.
func Write(path string, events []types.SearchEvent) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".searchpulse-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	header := []string{
		ColQuery, ColNormalizedQuery, ColTimestamp, ColResultCount,
		ColClicked, ColConverted, ColCategory, ColSessionID,
	}
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ev := range events {
		record := []string{
			ev.Query,
			ev.NormalizedQuery,
			ev.Timestamp.UTC().Format(timestampFormat),
			strconv.Itoa(ev.ResultCount),
			flagString(ev.Clicked),
			flagString(ev.Converted),
			ev.Category,
			ev.SessionID,
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

func flagString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Package storage handles season persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/beatgraph/internal/team"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

var (
	// ErrNoSnapshot is returned when a season has never been scraped.
	ErrNoSnapshot = errors.New("no snapshot for season, scrape first")

	// ErrMalformedSnapshot is returned when a snapshot line cannot be decoded.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// SnapshotExists reports whether a snapshot file is present at path.
func SnapshotExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadTeams reads every team from a JSONL snapshot in file order.
func ReadTeams(path string) ([]team.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var teams []team.Team
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var t team.Team
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSnapshot, lineNum, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSnapshot, lineNum, err)
		}
		teams = append(teams, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return teams, nil
}

// ReadSeason loads a season snapshot.
func ReadSeason(path string, year int) (*team.Season, error) {
	teams, err := ReadTeams(path)
	if err != nil {
		return nil, err
	}

	season := team.NewSeason(year)
	for i := range teams {
		season.Add(&teams[i])
	}
	return season, nil
}

// WriteSeason writes every team of a season to path, one per line, sorted
// by name. The file is replaced atomically.
func WriteSeason(path string, season *team.Season) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	for _, t := range season.Teams() {
		data, err := json.Marshal(t)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("encoding team %s: %w", t.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("writing team %s: %w", t.Name, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}

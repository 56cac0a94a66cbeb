// Package snapshot persists fetched odds and run results as timestamped JSON
// files. Files are append-only: each save creates a new file and nothing is
// ever mutated or deleted.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

const (
	oddsSubdir     = "data"
	analysisSubdir = "analysis"
	timestampFmt   = "20060102T150405.000000000Z"
)

// Store writes odds snapshots and run results under a base directory
type Store struct {
	baseDir string
	now     func() time.Time
}

// NewStore creates a store rooted at baseDir
func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		now:     time.Now,
	}
}

// SaveOdds serializes the given events to a new timestamped file under
// <baseDir>/data and returns its path
func (s *Store) SaveOdds(events []models.OddsEvent) (string, error) {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal odds: %w", err)
	}

	return s.writeNew(oddsSubdir, "odds", data)
}

// SaveRun persists a full run result under <baseDir>/analysis
func (s *Store) SaveRun(result *models.RunResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run result: %w", err)
	}

	return s.writeNew(analysisSubdir, "run", data)
}

// writeNew creates a new timestamped file and writes data to it. The file is
// opened with O_EXCL so a timestamp collision can never overwrite an earlier
// snapshot; on collision the timestamp is bumped by a nanosecond and retried.
func (s *Store) writeNew(subdir, prefix string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	ts := s.now().UTC()
	for {
		name := fmt.Sprintf("%s_%s.json", prefix, ts.Format(timestampFmt))
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				ts = ts.Add(time.Nanosecond)
				continue
			}
			return "", fmt.Errorf("create snapshot file: %w", err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write snapshot file: %w", err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close snapshot file: %w", err)
		}

		return path, nil
	}
}

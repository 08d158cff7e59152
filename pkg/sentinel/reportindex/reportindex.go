// Package reportindex stores a history of completed report runs —
// command, target, exit code, stats, and the paths of whatever cli/
// html/json/csv files were written — behind a github.com/dgraph-io/badger/v4
// key-value store. It backs the --report-index and --purge-reports
// maintenance commands. It never participates in scan
// decisions: nothing in the scanner or comparator consults it, so a
// stale or corrupt index cannot weaken hash correctness or
// snapshot determinism.
package reportindex

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

const runKeyPrefix = "run:"

// Run is one recorded invocation of a scan-family operation.
type Run struct {
	ID         string            `json:"id"`
	Command    string            `json:"command"`
	Target     string            `json:"target"`
	Mode       string            `json:"mode"`
	Changed    bool              `json:"changed"`
	ExitCode   int               `json:"exit_code"`
	Scanned    int               `json:"scanned"`
	Added      int               `json:"added"`
	Modified   int               `json:"modified"`
	Deleted    int               `json:"deleted"`
	Duration   float64           `json:"duration"`
	Outputs    map[string]string `json:"outputs,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Store is a badger-backed append-mostly log of Run records.
type Store struct {
	db *badger.DB
}

// Open opens or creates an index at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the index.
func (s *Store) Close() error {
	return s.db.Close()
}

// runKey orders runs chronologically within badger's own lexical key
// order by leading with an RFC3339Nano timestamp, then disambiguates
// same-instant runs with the run's uuid.
func runKey(startedAt time.Time, id string) []byte {
	return []byte(runKeyPrefix + startedAt.UTC().Format(time.RFC3339Nano) + ":" + id)
}

// Record assigns a new run ID if one isn't set and persists the run.
func (s *Store) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	data, err := json.Marshal(run)
	if err != nil {
		return Run{}, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.StartedAt, run.ID), data)
	})
	return run, err
}

// List returns up to limit runs, most recent first. limit <= 0 means
// no limit.
func (s *Store) List(limit int) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		seekFrom := append([]byte(runKeyPrefix), 0xff)
		for it.Seek(seekFrom); it.ValidForPrefix([]byte(runKeyPrefix)); it.Next() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run Run
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})

	return runs, err
}

// Filter returns runs whose Target matches the given glob pattern,
// most recent first, up to limit.
func (s *Store) Filter(pattern string, limit int) ([]Run, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	all, err := s.List(0)
	if err != nil {
		return nil, err
	}

	var matched []Run
	for _, run := range all {
		if !g.Match(run.Target) {
			continue
		}
		matched = append(matched, run)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

// Get returns the run with the given ID, or nil if not found.
func (s *Store) Get(id string) (*Run, error) {
	all, err := s.List(0)
	if err != nil {
		return nil, err
	}
	for _, run := range all {
		if run.ID == id {
			return &run, nil
		}
	}
	return nil, nil
}

// PruneOlderThan deletes every run whose FinishedAt is older than
// cutoff, returning the count removed. Used by --purge-reports.
func (s *Store) PruneOlderThan(cutoff time.Time) (int, error) {
	all, err := s.List(0)
	if err != nil {
		return 0, err
	}

	var toDelete [][]byte
	for _, run := range all {
		if run.FinishedAt.Before(cutoff) {
			toDelete = append(toDelete, runKey(run.StartedAt, run.ID))
		}
	}

	if len(toDelete) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range toDelete {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	return len(toDelete), err
}

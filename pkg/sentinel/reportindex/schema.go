package reportindex

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// CurrentSchemaVersion is bumped whenever the on-disk Run encoding
// changes in a way that requires a migration step.
const CurrentSchemaVersion = 1

const schemaKey = "m:__schema__"

// schemaRecord holds on-disk schema metadata.
type schemaRecord struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ensureSchema writes the current schema version on first open. There
// is only one version so far; this exists so a future format change
// has somewhere to record "what version is this database" without
// retrofitting it onto an unversioned store.
func (s *Store) ensureSchema() error {
	existing, err := s.schemaVersion()
	if err != nil {
		return err
	}
	if existing == CurrentSchemaVersion {
		return nil
	}

	record := schemaRecord{Version: CurrentSchemaVersion, UpdatedAt: time.Now()}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaKey), data)
	})
}

func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(schemaKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var record schemaRecord
			if err := json.Unmarshal(val, &record); err != nil {
				return err
			}
			version = record.Version
			return nil
		})
	})
	return version, err
}

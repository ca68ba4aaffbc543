// Package store keeps a local, append-only history of lifecycle events
// (setup, deploy, sync) in a BadgerDB database under the airdock home dir.
// Recording is best-effort: callers treat failures as non-fatal.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/rzbill/airdock/pkg/log"
)

const eventKeyPrefix = "event/"

// Event is a single recorded lifecycle event.
type Event struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryStore is a BadgerDB-backed event log.
type HistoryStore struct {
	db     *badger.DB
	path   string
	logger log.Logger

	// now is overridable for tests.
	now func() time.Time
}

// Open opens (creating if necessary) the history database at path.
func Open(path string, logger log.Logger) (*HistoryStore, error) {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	logger = logger.WithComponent("history")

	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	logger.Debug("history store opened", log.Str("path", path))
	return &HistoryStore{
		db:     db,
		path:   path,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an event for the given command. detail is free-form
// (image tag, reset target).
func (s *HistoryStore) Record(command, detail string) error {
	event := Event{
		ID:        uuid.New().String(),
		Command:   command,
		Detail:    detail,
		Timestamp: s.now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	// RFC 3339 UTC timestamps sort lexicographically, so key order is
	// chronological.
	key := fmt.Sprintf("%s%s/%s", eventKeyPrefix, event.Timestamp.Format(time.RFC3339Nano), event.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	s.logger.Debug("event recorded", log.Str("command", command))
	return nil
}

// List returns up to limit events, most recent first. limit <= 0 returns all.
func (s *HistoryStore) List(limit int) ([]Event, error) {
	var events []Event

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(eventKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the prefix range end so reverse iteration starts at the
		// newest key.
		seek := append([]byte(eventKeyPrefix), 0xff)
		for it.Seek(seek); it.Valid(); it.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			var event Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

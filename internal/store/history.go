package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/walls/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketHistory = []byte("history")

// HistoryStore implements domain.HistoryStore using BoltDB.
type HistoryStore struct {
	db *bolt.DB
	mu sync.Mutex

	// Memory-only mode keeps encoded entries here instead of on disk
	mem map[string][]byte
}

// NewHistoryStore opens (or creates) the history database at path.
// An empty path returns a memory-only store.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if path == "" {
		return &HistoryStore{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt db: %w", domain.ErrPersistence, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return &HistoryStore{db: db}, nil
}

// historyKey sorts lexically in time order; the ID breaks same-instant ties
func historyKey(entry domain.HistoryEntry) []byte {
	return []byte(fmt.Sprintf("%020d-%s", entry.AppliedAt.UnixNano(), entry.ID))
}

func (s *HistoryStore) Record(entry domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	key := historyKey(entry)

	if s.db == nil {
		s.mu.Lock()
		s.mem[string(key)] = data
		s.mu.Unlock()
		return nil
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHistory).Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *HistoryStore) List(limit int) ([]domain.HistoryEntry, error) {
	var raw [][]byte

	if s.db == nil {
		s.mu.Lock()
		keys := make([]string, 0, len(s.mem))
		for k := range s.mem {
			keys = append(keys, k)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		for _, k := range keys {
			if limit > 0 && len(raw) == limit {
				break
			}
			raw = append(raw, s.mem[k])
		}
		s.mu.Unlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			c := tx.Bucket(bucketHistory).Cursor()
			for k, v := c.Last(); k != nil; k, v = c.Prev() {
				if limit > 0 && len(raw) == limit {
					break
				}
				// Values are only valid for the life of the transaction
				data := make([]byte, len(v))
				copy(data, v)
				raw = append(raw, data)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
	}

	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, data := range raw {
		var entry domain.HistoryEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("%w: corrupt history entry: %w", domain.ErrPersistence, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/colorfulnotion/chronos/log"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	runPrefix   = "run/"
	indexPrefix = "idx/"
)

// Run is one archived profiler report pair.
type Run struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	CSV  string    `json:"csv"`
	Text string    `json:"text"`
}

// RunStore archives emitted reports, ordered by the time they were taken.
type RunStore struct {
	mu sync.Mutex // serialises the index read in Put with its batch
	ps *PersistenceStore
}

// OpenRunStore opens the archive at path; an empty path keeps it in memory.
func OpenRunStore(path string) (*RunStore, error) {
	ps, err := NewPersistenceStore(path)
	if err != nil {
		return nil, err
	}
	return &RunStore{ps: ps}, nil
}

func runKey(r Run) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", runPrefix, r.Time.UnixNano(), r.ID))
}

// Put archives r. A run already stored under the same id is replaced.
func (s *RunStore) Put(r Run) error {
	if r.ID == "" {
		return fmt.Errorf("storage: run without id")
	}
	val, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", r.ID, err)
	}
	key := runKey(r)
	idxKey := []byte(indexPrefix + r.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	var deletes [][]byte
	prev, ok, err := s.ps.Get(idxKey)
	if err != nil {
		return fmt.Errorf("put run %s: %w", r.ID, err)
	}
	if ok {
		deletes = append(deletes, prev)
	}
	if err := s.ps.WriteBatch([][2][]byte{
		{key, val},
		{idxKey, key},
	}, deletes); err != nil {
		return fmt.Errorf("put run %s: %w", r.ID, err)
	}
	log.Debug(log.StorageMonitoring, "archived run", "id", r.ID, "key", string(key))
	return nil
}

// Get returns the run archived under id.
func (s *RunStore) Get(id string) (Run, error) {
	key, ok, err := s.ps.Get([]byte(indexPrefix + id))
	if err != nil {
		return Run{}, err
	}
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	val, ok, err := s.ps.Get(key)
	if err != nil {
		return Run{}, err
	}
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	var r Run
	if err := json.Unmarshal(val, &r); err != nil {
		return Run{}, fmt.Errorf("decode run %s: %w", id, err)
	}
	return r, nil
}

// List returns every archived run, oldest first.
func (s *RunStore) List() ([]Run, error) {
	pairs, err := s.ps.GetWithPrefix([]byte(runPrefix))
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(pairs))
	for _, kv := range pairs {
		var r Run
		if err := json.Unmarshal(kv[1], &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kv[0], err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *RunStore) Close() error {
	return s.ps.Close()
}

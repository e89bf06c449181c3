package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceStorePrefix(t *testing.T) {
	ps, err := NewMemoryPersistenceStore()
	require.NoError(t, err)
	defer ps.Close()

	require.NoError(t, ps.Put([]byte("a/2"), []byte("two")))
	require.NoError(t, ps.Put([]byte("a/1"), []byte("one")))
	require.NoError(t, ps.Put([]byte("b/1"), []byte("other")))

	pairs, err := ps.GetWithPrefix([]byte("a/"))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "one", string(pairs[0][1]))
	assert.Equal(t, "two", string(pairs[1][1]))

	require.NoError(t, ps.Delete([]byte("a/1")))
	_, ok, err := ps.Get([]byte("a/1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunStore(t *testing.T) {
	s, err := OpenRunStore("")
	require.NoError(t, err)
	defer s.Close()

	base := time.Unix(1700000000, 0).UTC()
	second := Run{ID: "b", Time: base.Add(time.Minute), CSV: "csv-b", Text: "txt-b"}
	first := Run{ID: "a", Time: base, CSV: "csv-a", Text: "txt-a"}
	require.NoError(t, s.Put(second))
	require.NoError(t, s.Put(first))

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.True(t, runs[1].Time.Equal(second.Time))

	got, err := s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "csv-b", got.CSV)
	assert.Equal(t, "txt-b", got.Text)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)

	assert.Error(t, s.Put(Run{}))
}

func TestRunStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")
	s, err := OpenRunStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(Run{ID: "x", Time: time.Now(), CSV: "c"}))
	require.NoError(t, s.Close())

	s, err = OpenRunStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "c", got.CSV)
}

func TestRunStoreReplace(t *testing.T) {
	s, err := OpenRunStore("")
	require.NoError(t, err)
	defer s.Close()

	base := time.Unix(1700000000, 0).UTC()
	require.NoError(t, s.Put(Run{ID: "a", Time: base, CSV: "old"}))
	require.NoError(t, s.Put(Run{ID: "b", Time: base.Add(time.Second), CSV: "other"}))
	require.NoError(t, s.Put(Run{ID: "a", Time: base.Add(time.Minute), CSV: "new"}))
	// same id and time rewrites the row in place
	require.NoError(t, s.Put(Run{ID: "b", Time: base.Add(time.Second), CSV: "other2"}))

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, "other2", runs[0].CSV)
	assert.Equal(t, "a", runs[1].ID)
	assert.Equal(t, "new", runs[1].CSV)

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "new", got.CSV)
}

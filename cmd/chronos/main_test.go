package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colorfulnotion/chronos/chronos"
	"github.com/colorfulnotion/chronos/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFunctions(t *testing.T) {
	chronos.Release()
	defer chronos.Release()
	profile = true

	assert.Equal(t, int64(3628800), factorial(10))
	assert.Equal(t, int64(55), fibb(10))
	assert.Equal(t, int64(362880), counter(10))

	p := chronos.Instance()
	p.Aggregate()
	names := map[string]int64{}
	for _, r := range p.Records() {
		names[r.Name[strings.LastIndex(r.Name, ".")+1:]] = r.Calls()
	}
	// ids come from a microsecond clock, so recursive calls may share one
	assert.Contains(t, names, "factorial")
	assert.Contains(t, names, "fibb")
	assert.Equal(t, int64(1), names["counter"])
}

func TestDriverDisabled(t *testing.T) {
	chronos.Release()
	defer chronos.Release()
	profile = false
	defer func() { profile = true }()

	factorial(5)
	fibb(5)
	assert.Zero(t, chronos.Instance().Len())
}

func TestRunChartHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := chronos.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "profiler")
	archive := filepath.Join(dir, "archive")

	run := newRunCmd(cfg)
	run.SetArgs([]string{"--n", "6", "--archive", archive, "--chart"})
	require.NoError(t, run.Execute())

	data, err := os.ReadFile(cfg.CSVPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), chronos.CSVHeader+"\n"))
	assert.FileExists(t, cfg.TextPath())
	assert.FileExists(t, cfg.ChartPath())

	out := filepath.Join(dir, "again.html")
	chart := newChartCmd(cfg)
	chart.SetArgs([]string{"--out", out})
	require.NoError(t, chart.Execute())
	assert.FileExists(t, out)

	store, err := storage.OpenRunStore(archive)
	require.NoError(t, err)
	runs, err := store.List()
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, string(data), runs[0].CSV)

	history := newHistoryCmd()
	history.SetArgs([]string{"--archive", archive, "--show", runs[0].ID})
	require.NoError(t, history.Execute())
}

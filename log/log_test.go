package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":    "trace",
		"DEBUG":    "debug",
		"info":     "info",
		"Warning":  "warn",
		"error":    "error",
		"critical": "crit",
	}
	for in, want := range cases {
		lvl, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, LevelString(lvl))
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleGating(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	defer SetDefault(prev)
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, false)))

	Debug(StorageMonitoring, "hidden")
	assert.Empty(t, buf.String())

	EnableModule(StorageMonitoring)
	defer DisableModule(StorageMonitoring)
	Debug(StorageMonitoring, "shown", "key", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "module=storage")
	assert.Contains(t, buf.String(), "level=debug")

	buf.Reset()
	Info(ProfilerMonitoring, "always")
	assert.Contains(t, buf.String(), "always")
}

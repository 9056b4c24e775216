package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"": INFO, "debug": DEBUG, "WARN": WARN, "Error": ERROR} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WARN, &buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "shown 2")

	l.SetLevel(DEBUG)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("boom")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL]")
}

func TestLoggerStampsWithClock(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf)
	l.clock = func() time.Time { return time.Date(2026, 10, 19, 14, 5, 9, 123_000_000, time.UTC) }

	l.Info("phase ASCENT")
	assert.Equal(t, "[INFO] 2026-10-19 14:05:09.123  phase ASCENT\n", buf.String())
}

func TestLoggerCloseReleasesFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "sim.log"))
	require.NoError(t, err)
	l := NewLogger(INFO, f)
	l.file = f

	l.Info("written")
	l.Close()
	assert.Nil(t, l.file)
	l.Close()

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "T+00:00.0", FormatDuration(0))
	assert.Equal(t, "T+01:05.5", FormatDuration(65500*time.Millisecond))
	assert.Equal(t, "T+00:00.0", FormatDuration(-time.Second))
}

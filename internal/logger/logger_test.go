package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesEverywhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "viewer.txt")
	var console bytes.Buffer
	l, err := New(Options{Path: path, Level: "debug", Console: &console})
	require.NoError(t, err)

	log := l.Component("picking")
	log.Debug().Str("title", "Heel Stone").Msg("hotspot picked")
	l.Log("cmd scene stonehenge")
	require.NoError(t, l.Close())

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "hotspot picked")
	assert.Contains(t, lines[0], "component=picking")
	assert.Contains(t, lines[1], "cmd scene stonehenge")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hotspot picked")
	assert.Contains(t, console.String(), "cmd scene stonehenge")
}

func TestLevelFiltering(t *testing.T) {
	l, err := New(Options{Path: "-", Level: "warn"})
	require.NoError(t, err)
	l.Info().Msg("quiet")
	l.Warn().Msg("loud")
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "loud")
}

func TestLinesAreBounded(t *testing.T) {
	l, err := New(Options{Path: "-", Keep: 3})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		l.Info().Msg(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 2")
	assert.Contains(t, lines[2], "line 4")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

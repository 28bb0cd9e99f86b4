package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# viewer overrides
VIEWER_LOG_LEVEL=debug
export VIEWER_WINDOW_TITLE="Stone Circle"
VIEWER_UI_FONT='fonts/Inter.ttf'
not a pair
=novalue

VIEWER_WINDOW_WIDTH=1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("VIEWER_WINDOW_WIDTH", "640")
	// Registered with t.Setenv so the values are restored after the test.
	t.Setenv("VIEWER_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("VIEWER_LOG_LEVEL"))
	t.Setenv("VIEWER_WINDOW_TITLE", "")
	require.NoError(t, os.Unsetenv("VIEWER_WINDOW_TITLE"))
	t.Setenv("VIEWER_UI_FONT", "")
	require.NoError(t, os.Unsetenv("VIEWER_UI_FONT"))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"VIEWER_LOG_LEVEL", "VIEWER_WINDOW_TITLE", "VIEWER_UI_FONT"}, set)
	assert.Equal(t, "debug", os.Getenv("VIEWER_LOG_LEVEL"))
	assert.Equal(t, "Stone Circle", os.Getenv("VIEWER_WINDOW_TITLE"))
	assert.Equal(t, "fonts/Inter.ttf", os.Getenv("VIEWER_UI_FONT"))
	assert.Equal(t, "640", os.Getenv("VIEWER_WINDOW_WIDTH"))
}

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
	assert.Empty(t, set)
}

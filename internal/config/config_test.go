package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-viewer/internal/projection"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(filepath.Join(t.TempDir(), "viewer.json")))

	w := GetWindow()
	assert.Equal(t, 1280, w.Width)
	assert.Equal(t, 720, w.Height)
	assert.Equal(t, 60, w.FPS)
	assert.Equal(t, "Landmark Viewer", w.Title)
	assert.Equal(t, "info", GetString("log.level"))
	assert.Equal(t, "assets/cache", GetString("assets.cacheDir"))
	assert.True(t, GetBool("scene.showGrid"))
	assert.False(t, GetBool("catalog.watch"))

	timing := GetPopupTiming()
	assert.Equal(t, 10*time.Millisecond, timing.FlushDelay)
	assert.Equal(t, 300*time.Millisecond, timing.Transition)
	assert.Equal(t, projection.DefaultScaling(), GetScaling())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "viewer.json")
	cfg := `{
		"window": {"width": 800, "title": "Stones"},
		"log": {"level": "debug"},
		"popup": {"transition": "150ms"},
		"projection": {"k": 0.2, "minScale": 0.5, "maxScale": 2}
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	require.NoError(t, Load(path))

	w := GetWindow()
	assert.Equal(t, 800, w.Width)
	assert.Equal(t, 720, w.Height)
	assert.Equal(t, "Stones", w.Title)
	assert.Equal(t, "debug", GetString("log.level"))
	assert.Equal(t, 150*time.Millisecond, GetPopupTiming().Transition)
	assert.Equal(t, projection.Scaling{K: 0.2, Min: 0.5, Max: 2}, GetScaling())
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "viewer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"window": `), 0644))
	assert.Error(t, Load(path))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("VIEWER_WINDOW_HEIGHT", "900")
	t.Setenv("VIEWER_DEBUG_SHOWFPS", "true")

	require.NoError(t, Load(filepath.Join(t.TempDir(), "viewer.json")))
	assert.Equal(t, 900, GetWindow().Height)
	assert.True(t, GetBool("debug.showFPS"))
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(filepath.Join(t.TempDir(), "viewer.json")))

	Set("window.width", -5)
	Set("projection.minScale", 3)
	Set("popup.flushDelay", "-1s")
	assert.Equal(t, 1280, GetWindow().Width)
	assert.Equal(t, projection.DefaultScaling(), GetScaling())
	assert.Equal(t, time.Duration(0), GetPopupTiming().FlushDelay)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config", "viewer.json")
	require.NoError(t, Load(path))
	Set("debug.showHitVolumes", true)
	Set("scene.default", "stonehenge")
	require.NoError(t, Save(path))

	viper.Reset()
	require.NoError(t, Load(path))
	assert.True(t, GetBool("debug.showHitVolumes"))
	assert.Equal(t, "stonehenge", GetString("scene.default"))
}

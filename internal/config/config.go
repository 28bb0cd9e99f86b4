package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"landmark-viewer/internal/popup"
	"landmark-viewer/internal/projection"
)

// DefaultPath is the config file path, relative to the working directory.
const DefaultPath = "config/viewer.json"

// EnvPrefix prefixes environment overrides, e.g. VIEWER_WINDOW_WIDTH.
const EnvPrefix = "VIEWER"

// Window holds window settings read at startup.
type Window struct {
	Width      int
	Height     int
	Fullscreen bool
	FPS        int
	Title      string
}

func setDefaults() {
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.fullscreen", false)
	viper.SetDefault("window.fps", 60)
	viper.SetDefault("window.title", "Landmark Viewer")

	viper.SetDefault("log.level", "info")

	viper.SetDefault("catalog.path", "")
	viper.SetDefault("catalog.watch", false)
	viper.SetDefault("scene.default", "")

	viper.SetDefault("popup.flushDelay", "10ms")
	viper.SetDefault("popup.transition", "300ms")

	viper.SetDefault("projection.k", projection.DefaultScaling().K)
	viper.SetDefault("projection.minScale", projection.DefaultScaling().Min)
	viper.SetDefault("projection.maxScale", projection.DefaultScaling().Max)

	viper.SetDefault("debug.showFPS", false)
	viper.SetDefault("debug.showHitVolumes", false)
	viper.SetDefault("scene.showGrid", true)

	viper.SetDefault("ui.font", "")
	viper.SetDefault("assets.cacheDir", "assets/cache")
}

// Load sets defaults, binds VIEWER_* environment variables and reads the JSON file at path. A
// missing file is not an error; the defaults apply.
func Load(path string) error {
	setDefaults()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Save writes the current settings, defaults included, to path.
func Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Set overrides a key for the rest of the run. Call Save to persist it.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetWindow returns the window settings. Non-positive sizes fall back to the defaults.
func GetWindow() Window {
	w := Window{
		Width:      viper.GetInt("window.width"),
		Height:     viper.GetInt("window.height"),
		Fullscreen: viper.GetBool("window.fullscreen"),
		FPS:        viper.GetInt("window.fps"),
		Title:      viper.GetString("window.title"),
	}
	if w.Width <= 0 {
		w.Width = 1280
	}
	if w.Height <= 0 {
		w.Height = 720
	}
	if w.FPS < 0 {
		w.FPS = 0
	}
	return w
}

// GetPopupTiming returns the popup delays. Negative durations become zero.
func GetPopupTiming() popup.Timing {
	t := popup.Timing{
		FlushDelay: viper.GetDuration("popup.flushDelay"),
		Transition: viper.GetDuration("popup.transition"),
	}
	t.FlushDelay = max(t.FlushDelay, 0)
	t.Transition = max(t.Transition, 0)
	return t
}

// GetScaling returns the marker distance scaling. Invalid values fall back to the defaults.
func GetScaling() projection.Scaling {
	s := projection.Scaling{
		K:   float32(viper.GetFloat64("projection.k")),
		Min: float32(viper.GetFloat64("projection.minScale")),
		Max: float32(viper.GetFloat64("projection.maxScale")),
	}
	if s.K <= 0 || s.Min <= 0 || s.Max < s.Min {
		return projection.DefaultScaling()
	}
	return s
}

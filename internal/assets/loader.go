package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Stage is the loader phase shown in the progress bar.
type Stage int

const (
	Downloading Stage = iota
	Extracting
	Inspecting
	Ready
	Failed
)

func (s Stage) String() string {
	switch s {
	case Downloading:
		return "downloading"
	case Extracting:
		return "extracting"
	case Inspecting:
		return "inspecting"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Update is one loader status message. The last update on a channel has Stage Ready or Failed.
type Update struct {
	Stage    Stage
	Progress Progress
	Path     string     // local model path, set when Ready
	Info     *ModelInfo // set when Ready and the model is glTF with bounds
	Err      error      // set when Failed
}

// Done reports whether this is the final update.
func (u Update) Done() bool {
	return u.Stage == Ready || u.Stage == Failed
}

// ErrNoModel means a bundle held no loadable model file.
var ErrNoModel = errors.New("no model file")

// Loader resolves model sources into local files in the background. Remote sources are cached
// under CacheDir.
type Loader struct {
	CacheDir string
	log      zerolog.Logger
}

// NewLoader returns a loader caching into cacheDir.
func NewLoader(cacheDir string, log zerolog.Logger) *Loader {
	return &Loader{CacheDir: cacheDir, log: log}
}

// Load resolves source on a new goroutine and streams updates. The channel is closed after the
// final update. Progress updates may be dropped when the reader is slow; the final one never is.
func (l *Loader) Load(ctx context.Context, source string) <-chan Update {
	ch := make(chan Update, 8)
	go func() {
		defer close(ch)
		send := func(u Update) {
			select {
			case ch <- u:
			default:
			}
		}
		path, err := l.resolve(ctx, source, send)
		final := Update{Stage: Ready, Path: path}
		if err != nil {
			l.log.Error().Err(err).Str("source", source).Msg("model load failed")
			final = Update{Stage: Failed, Err: err}
		} else if info, ok := l.inspect(path, send); ok {
			final.Info = &info
		}
		select {
		case ch <- final:
		case <-ctx.Done():
		}
	}()
	return ch
}

// Resolve returns a local path for source, downloading and extracting it when needed.
func (l *Loader) Resolve(ctx context.Context, source string) (string, error) {
	return l.resolve(ctx, source, func(Update) {})
}

func (l *Loader) resolve(ctx context.Context, source string, send func(Update)) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", errors.New("assets: empty source")
	}
	path := source
	if IsRemote(source) {
		dir := filepath.Join(l.CacheDir, cacheKey(source))
		if cached, ok := cachedFile(dir); ok {
			l.log.Debug().Str("source", source).Str("path", cached).Msg("using cached asset")
			path = cached
		} else {
			send(Update{Stage: Downloading, Progress: Progress{Total: -1}})
			saved, err := Fetch(ctx, source, dir, func(p Progress) {
				send(Update{Stage: Downloading, Progress: p})
			})
			if err != nil {
				return "", err
			}
			l.log.Info().Str("source", source).Str("path", saved).Msg("downloaded asset")
			path = saved
		}
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		send(Update{Stage: Extracting})
		dir := strings.TrimSuffix(path, filepath.Ext(path))
		files, err := Unzip(path, dir)
		if err != nil {
			return "", err
		}
		model := FindModel(files)
		if model == "" {
			return "", fmt.Errorf("assets: %s: %w", path, ErrNoModel)
		}
		path = model
	}
	return path, nil
}

// inspect reads glTF bounds. Failures are logged and otherwise ignored.
func (l *Loader) inspect(path string, send func(Update)) (ModelInfo, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gltf" && ext != ".glb" {
		return ModelInfo{}, false
	}
	send(Update{Stage: Inspecting})
	info, err := Inspect(path)
	if err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("model inspection failed")
		return ModelInfo{}, false
	}
	l.log.Debug().Str("path", path).Int("meshes", info.Meshes).
		Floats32("min", info.Bounds.Min[:]).Floats32("max", info.Bounds.Max[:]).Msg("model inspected")
	return info, true
}

// cachedFile returns a previously fetched model or, failing that, any single fetched file in dir.
func cachedFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if m := FindModel(files); m != "" {
		return m, true
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".zip") {
			return f, true
		}
	}
	if len(files) == 1 {
		return files[0], true
	}
	return "", false
}

func cacheKey(url string) string {
	u := stripQuery(url)
	u = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(u), "https://"), "http://")
	return sanitizeFilename(strings.ReplaceAll(u, "/", "_"))
}

package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// ErrNotFound is returned when no font matches.
var ErrNotFound = errors.New("fonts: no matching font")

// BaseDirs are searched in order, relative to the working directory.
var BaseDirs = []string{"assets/fonts", "../../assets/fonts"}

// IsFont reports whether path has a font extension.
func IsFont(path string) bool {
	return slices.Contains(Exts, strings.ToLower(filepath.Ext(path)))
}

// ScanDir returns the font files under dir as slash-separated paths relative to dir.
// A missing dir yields no files and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !IsFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find resolves the ui.font setting to a file. An existing font path is returned as is; anything
// else is matched by name ("Inter", "Noto Sans") against the fonts under dirs, preferring a
// Regular face. With no dirs, BaseDirs are used.
func Find(search string, dirs ...string) (string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", ErrNotFound
	}
	if IsFont(search) {
		if _, err := os.Stat(search); err == nil {
			return search, nil
		}
	}
	if len(dirs) == 0 {
		dirs = BaseDirs
	}
	norm := normalize(strings.TrimSuffix(search, filepath.Ext(search)))
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", ErrNotFound
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

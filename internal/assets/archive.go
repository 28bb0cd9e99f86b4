package assets

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Unzip extracts zipPath into destDir, preserving directory structure. Entries that would escape
// destDir are skipped. Returns the extracted file paths.
func Unzip(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && r != nil) {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}

	var extracted []string
	for _, f := range r.File {
		dest := filepath.Join(absDir, f.Name)
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip: %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// modelRank orders loadable formats; lower is preferred.
var modelRank = map[string]int{".glb": 0, ".gltf": 1, ".obj": 2}

// IsModel reports whether path has a loadable model extension.
func IsModel(path string) bool {
	_, ok := modelRank[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FindModel picks the model file among paths: preferred format first, then the shallowest path,
// then lexical order. Returns "" when none qualifies.
func FindModel(paths []string) string {
	var models []string
	for _, p := range paths {
		if IsModel(p) {
			models = append(models, p)
		}
	}
	if len(models) == 0 {
		return ""
	}
	sort.SliceStable(models, func(i, j int) bool {
		ri := modelRank[strings.ToLower(filepath.Ext(models[i]))]
		rj := modelRank[strings.ToLower(filepath.Ext(models[j]))]
		if ri != rj {
			return ri < rj
		}
		di := strings.Count(filepath.ToSlash(models[i]), "/")
		dj := strings.Count(filepath.ToSlash(models[j]), "/")
		if di != dj {
			return di < dj
		}
		return models[i] < models[j]
	})
	return models[0]
}

// FindModelInDir walks dir and returns FindModel over its files.
func FindModelInDir(dir string) (string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return FindModel(files), nil
}

package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// Bounds is an axis-aligned box in model space.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ErrNoBounds means the document has no POSITION accessor with min/max.
var ErrNoBounds = errors.New("no position bounds")

// ModelInfo summarizes a glTF document.
type ModelInfo struct {
	Generator string
	Meshes    int
	Nodes     int
	Bounds    Bounds
}

// Inspect reads a .gltf or .glb file and returns its mesh counts and the union of the POSITION
// accessor ranges. Node transforms are not applied.
func Inspect(path string) (ModelInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gltf" && ext != ".glb" {
		return ModelInfo{}, fmt.Errorf("inspect: %s: not a glTF file", path)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("inspect: %w", err)
	}
	info := ModelInfo{Generator: doc.Asset.Generator, Meshes: len(doc.Meshes), Nodes: len(doc.Nodes)}
	b, ok := positionBounds(doc)
	if !ok {
		return info, fmt.Errorf("inspect: %s: %w", path, ErrNoBounds)
	}
	info.Bounds = b
	return info, nil
}

func positionBounds(doc *gltf.Document) (Bounds, bool) {
	var b Bounds
	found := false
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			idx, ok := p.Attributes[gltf.POSITION]
			if !ok || idx < 0 || idx >= len(doc.Accessors) {
				continue
			}
			acc := doc.Accessors[idx]
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			lo := mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])}
			hi := mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])}
			if !found {
				b = Bounds{Min: lo, Max: hi}
				found = true
				continue
			}
			for i := 0; i < 3; i++ {
				b.Min[i] = min(b.Min[i], lo[i])
				b.Max[i] = max(b.Max[i], hi[i])
			}
		}
	}
	return b, found
}

package assets

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 120, 40, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "clock.png")
	require.NoError(t, imgio.Save(path, img, imgio.PNGEncoder()))
	return path
}

func TestLoadImageShrinksToFit(t *testing.T) {
	path := writePNG(t, 800, 400)
	img, err := LoadImage(path, 200, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	px := img.RGBAAt(50, 50)
	assert.InDelta(t, 200, int(px.R), 2)
	assert.Equal(t, uint8(255), px.A)
}

func TestLoadImageKeepsSmallImages(t *testing.T) {
	path := writePNG(t, 40, 30)
	img, err := LoadImage(path, 200, 200)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.jpg"), 100, 100)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = LoadImage(bad, 100, 100)
	assert.Error(t, err)
}

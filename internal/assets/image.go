package assets

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG or WebP file and shrinks it to fit maxW x maxH, keeping the
// aspect ratio. Smaller images are returned at their own size. A non-positive bound disables
// resizing.
func LoadImage(path string, maxW, maxH int) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image: %s: empty image", path)
	}
	if w != b.Dx() || h != b.Dy() {
		return transform.Resize(img, w, h, transform.Linear), nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	s := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*s)), max(1, int(float64(h)*s))
}

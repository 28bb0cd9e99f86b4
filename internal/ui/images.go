package ui

import (
	"context"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"landmark-viewer/internal/assets"
)

// Resolver maps an image reference (path or URL) to a local file.
type Resolver interface {
	Resolve(ctx context.Context, source string) (string, error)
}

type imageState int

const (
	imageLoading imageState = iota
	imageReady
	imageFailed
)

type imageEntry struct {
	state imageState
	tex   rl.Texture2D
}

type imageResult struct {
	ref string
	img *image.RGBA
	err error
}

// Images loads popup images in the background and uploads them as textures on the render thread.
// Decoding and resizing happen off the render thread; Poll must be called from it.
type Images struct {
	ctx      context.Context
	resolver Resolver
	maxW     int
	maxH     int
	log      zerolog.Logger
	entries  map[string]*imageEntry
	results  chan imageResult
}

// NewImages returns a cache that shrinks images to fit maxW x maxH.
func NewImages(ctx context.Context, resolver Resolver, maxW, maxH int, log zerolog.Logger) *Images {
	return &Images{
		ctx:      ctx,
		resolver: resolver,
		maxW:     maxW,
		maxH:     maxH,
		log:      log,
		entries:  map[string]*imageEntry{},
		results:  make(chan imageResult, 4),
	}
}

// Request starts loading ref unless it is loading, loaded or already failed.
func (im *Images) Request(ref string) {
	if ref == "" || im.entries[ref] != nil {
		return
	}
	im.entries[ref] = &imageEntry{state: imageLoading}
	go func() {
		res := imageResult{ref: ref}
		path, err := im.resolver.Resolve(im.ctx, ref)
		if err == nil {
			res.img, err = assets.LoadImage(path, im.maxW, im.maxH)
		}
		res.err = err
		select {
		case im.results <- res:
		case <-im.ctx.Done():
		}
	}()
}

// Poll uploads finished images. Failures are logged once and the image is omitted.
func (im *Images) Poll() {
	for {
		select {
		case res := <-im.results:
			e := im.entries[res.ref]
			if e == nil {
				continue
			}
			if res.err != nil {
				e.state = imageFailed
				im.log.Warn().Err(res.err).Str("image", res.ref).Msg("popup image unavailable")
				continue
			}
			img := rl.NewImageFromImage(res.img)
			e.tex = rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			rl.SetTextureFilter(e.tex, rl.FilterBilinear)
			e.state = imageReady
		default:
			return
		}
	}
}

// Texture returns the texture for ref once it is ready.
func (im *Images) Texture(ref string) (*rl.Texture2D, bool) {
	e := im.entries[ref]
	if e == nil || e.state != imageReady {
		return nil, false
	}
	return &e.tex, true
}

// Unload releases every texture.
func (im *Images) Unload() {
	for ref, e := range im.entries {
		if e.state == imageReady {
			rl.UnloadTexture(e.tex)
		}
		delete(im.entries, ref)
	}
}

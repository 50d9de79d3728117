// Package thumbnail renders downscaled preview images for uploaded assets.
// Renders run on a bounded worker pool so a burst of large uploads cannot
// exhaust memory.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/disintegration/imaging"

	"github.com/dealerpress/media-library/internal/adapter"
)

// ErrNotAnImage is returned when the bytes do not decode as a raster image
var ErrNotAnImage = errors.New("source is not a decodable image")

// jpegQuality is the encode quality for generated thumbnails
const jpegQuality = 80

// Result carries the rendered thumbnail and the source raster's dimensions
type Result struct {
	Data        []byte
	ContentType string
	// SourceWidth and SourceHeight are the decoded source's dimensions,
	// recorded so the caller does not decode the image twice
	SourceWidth  int
	SourceHeight int
}

// Generator renders thumbnails on a bounded worker pool
type Generator struct {
	codec   adapter.ImageCodec
	maxEdge int
	pool    pond.ResultPool[*Result]
}

// NewGenerator creates a thumbnail generator. maxEdge is the longest edge of
// generated thumbnails; workers bounds concurrent renders.
func NewGenerator(codec adapter.ImageCodec, maxEdge, workers int) *Generator {
	if maxEdge <= 0 {
		maxEdge = 480
	}
	if workers <= 0 {
		workers = 4
	}

	return &Generator{
		codec:   codec,
		maxEdge: maxEdge,
		pool:    pond.NewResultPool[*Result](workers),
	}
}

// Close shuts down the worker pool
func (g *Generator) Close() {
	_ = g.pool.Stop()
}

// Generate renders a JPEG thumbnail for the given image bytes
func (g *Generator) Generate(data []byte) (*Result, error) {
	task := g.pool.SubmitErr(func() (*Result, error) {
		return g.render(data)
	})
	return task.Wait()
}

func (g *Generator) render(data []byte) (*Result, error) {
	img, _, err := g.codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	b := img.Bounds()
	thumb := imaging.Fit(img, g.maxEdge, g.maxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := g.codec.EncodeJPEG(&buf, thumb, jpegQuality); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &Result{
		Data:         buf.Bytes(),
		ContentType:  "image/jpeg",
		SourceWidth:  b.Dx(),
		SourceHeight: b.Dy(),
	}, nil
}

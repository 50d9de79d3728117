package adapter

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	// Register decoders for the formats the library accepts.
	_ "image/gif"
)

// ImageCodec defines an interface for decoding and encoding raster images.
// It is the narrow "byte-source + raster-encode" capability the editors and
// thumbnail generator depend on, so pixel logic stays testable without a
// real rendering surface.
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageCodec=MockImageCodec
type ImageCodec interface {
	// Decode reads an image from r and returns it with its format name
	Decode(r io.Reader) (image.Image, string, error)
	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error
	// EncodeJPEG encodes an image to JPEG format with the given quality
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// RealImageCodec implements ImageCodec using the standard library
type RealImageCodec struct{}

// NewImageCodec creates a new real image codec
func NewImageCodec() ImageCodec {
	return &RealImageCodec{}
}

// Decode reads an image from r and returns it with its format name
func (c *RealImageCodec) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// EncodePNG encodes an image to PNG format
func (c *RealImageCodec) EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJPEG encodes an image to JPEG format with the given quality
func (c *RealImageCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

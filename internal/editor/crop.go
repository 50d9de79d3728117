package editor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
)

var (
	// ErrEmptyCropRegion is returned when commit runs against a zero-area crop rectangle
	ErrEmptyCropRegion = errors.New("crop region has zero width or height")

	// ErrRegionOutOfBounds is returned when a crop rectangle extends outside the source image
	ErrRegionOutOfBounds = errors.New("crop region extends outside the source image")
)

// jpegQuality is the encode quality for committed crops
const jpegQuality = 90

// Rect is an axis-aligned rectangle in the crop view's pixel coordinate
// space, the source image as presented under the active rotation
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has zero area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// CropResult is handed to the save callback on a successful commit
type CropResult struct {
	Session  Session
	Blob     Blob
	Filename string
	Width    int
	Height   int
}

// CropEditor holds the state of an image crop session: the decoded source,
// the crop region, an optional locked aspect ratio, and the view transforms
// zoom and rotation. The crop rectangle lives in the view's coordinate space:
// rotating the view changes which source pixels sit under the rectangle, not
// the rectangle itself.
type CropEditor struct {
	session Session
	codec   adapter.ImageCodec

	source   image.Image
	srcName  string
	format   string
	region   *Rect
	aspect   float64 // width/height, 0 = free
	zoom     float64
	rotation int // quarter turns only: 0, 90, 180, 270
}

// NewCropEditor decodes the source image and starts a crop session. When an
// aspect ratio is preselected, a centered crop region covering 90% of the
// shorter dimension is computed; otherwise the region starts unset and the
// operator must draw one.
func NewCropEditor(itemID, name string, r io.Reader, codec adapter.ImageCodec, aspect float64) (*CropEditor, error) {
	img, format, err := codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	e := &CropEditor{
		session: NewSession(itemID),
		codec:   codec,
		source:  img,
		srcName: name,
		format:  format,
		zoom:    1,
	}
	if aspect > 0 {
		e.aspect = aspect
		region := e.centeredRegion(aspect)
		e.region = &region
	}
	return e, nil
}

// Session returns the editing session identity
func (e *CropEditor) Session() Session {
	return e.session
}

// Region returns the current crop rectangle, if one is set
func (e *CropEditor) Region() (Rect, bool) {
	if e.region == nil {
		return Rect{}, false
	}
	return *e.region, true
}

// SetRegion sets the crop rectangle drawn by the operator, validated against
// the current view's bounds
func (e *CropEditor) SetRegion(r Rect) error {
	if r.Empty() {
		return ErrEmptyCropRegion
	}
	vw, vh := e.viewBounds()
	if r.X < 0 || r.Y < 0 || r.X+r.W > vw || r.Y+r.H > vh {
		return ErrRegionOutOfBounds
	}
	region := r
	e.region = &region
	return nil
}

// SetAspectRatio locks the crop to the given width/height ratio and
// recomputes a centered region. The previous region's position is not
// preserved. A ratio of 0 unlocks the aspect without touching the region.
func (e *CropEditor) SetAspectRatio(aspect float64) {
	e.aspect = aspect
	if aspect > 0 {
		region := e.centeredRegion(aspect)
		e.region = &region
	}
}

// SetZoom sets the view magnification. Values below 1 are clamped to 1.
func (e *CropEditor) SetZoom(zoom float64) {
	if zoom < 1 {
		zoom = 1
	}
	e.zoom = zoom
}

// Rotate adds a clockwise quarter turn to the view rotation. The crop
// rectangle keeps its position and size on the rotated view; a rectangle the
// rotation pushes outside the view is rejected at commit.
func (e *CropEditor) Rotate() {
	e.rotation = (e.rotation + 90) % 360
}

// Zoom returns the current view magnification
func (e *CropEditor) Zoom() float64 {
	return e.zoom
}

// Rotation returns the current view rotation in degrees
func (e *CropEditor) Rotation() int {
	return e.rotation
}

// Reset clears crop rectangle, aspect ratio, zoom and rotation back to their
// defaults without reloading the source
func (e *CropEditor) Reset() {
	e.region = nil
	e.aspect = 0
	e.zoom = 1
	e.rotation = 0
}

// Commit rasterizes the committed crop rectangle into a standalone image
// blob. The output raster covers exactly the committed rectangle: pixels are
// sampled from the rotated view, so rotation changes which source pixels are
// copied, never the output dimensions. The active zoom keeps the centered
// 1/zoom portion of the region, resampled back to the rectangle's size.
// Failure leaves the editor state untouched so the operator can retry.
func (e *CropEditor) Commit() (*CropResult, error) {
	if e.region == nil || e.region.Empty() {
		return nil, &domain.EditorCommitError{Op: "crop", Err: ErrEmptyCropRegion}
	}

	region := *e.region
	vw, vh := e.viewBounds()
	if region.X+region.W > vw || region.Y+region.H > vh {
		return nil, &domain.EditorCommitError{Op: "crop", Err: ErrRegionOutOfBounds}
	}

	out := imaging.Crop(e.view(), image.Rect(region.X, region.Y, region.X+region.W, region.Y+region.H))

	if e.zoom > 1 {
		innerW := int(math.Round(float64(region.W) / e.zoom))
		innerH := int(math.Round(float64(region.H) / e.zoom))
		if innerW < 1 {
			innerW = 1
		}
		if innerH < 1 {
			innerH = 1
		}
		out = imaging.Resize(imaging.CropCenter(out, innerW, innerH), region.W, region.H, imaging.Lanczos)
	}

	blob, err := e.encode(out)
	if err != nil {
		return nil, &domain.EditorCommitError{Op: "crop", Err: err}
	}

	return &CropResult{
		Session:  e.session,
		Blob:     blob,
		Filename: e.croppedFilename(blob.ContentType),
		Width:    out.Bounds().Dx(),
		Height:   out.Bounds().Dy(),
	}, nil
}

// view returns the source as presented under the active rotation
func (e *CropEditor) view() image.Image {
	switch e.rotation {
	case 90:
		return imaging.Rotate270(e.source) // imaging rotates counter-clockwise
	case 180:
		return imaging.Rotate180(e.source)
	case 270:
		return imaging.Rotate90(e.source)
	}
	return e.source
}

// viewBounds returns the view's dimensions, transposed for 90 and 270 degrees
func (e *CropEditor) viewBounds() (int, int) {
	b := e.source.Bounds()
	if e.rotation == 90 || e.rotation == 270 {
		return b.Dy(), b.Dx()
	}
	return b.Dx(), b.Dy()
}

// centeredRegion computes a crop region with the given aspect ratio, centered
// on the view and covering 90% of the shorter dimension
func (e *CropEditor) centeredRegion(aspect float64) Rect {
	srcW, srcH := e.viewBounds()

	shorter := srcW
	if srcH < shorter {
		shorter = srcH
	}
	base := float64(shorter) * 0.9

	w := base
	h := base / aspect
	if aspect < 1 {
		h = base
		w = base * aspect
	}
	if w > float64(srcW) {
		scale := float64(srcW) / w
		w *= scale
		h *= scale
	}
	if h > float64(srcH) {
		scale := float64(srcH) / h
		w *= scale
		h *= scale
	}

	rw := int(math.Round(w))
	rh := int(math.Round(h))
	return Rect{
		X: (srcW - rw) / 2,
		Y: (srcH - rh) / 2,
		W: rw,
		H: rh,
	}
}

// encode compresses the raster, keeping PNG sources lossless and encoding
// everything else as JPEG
func (e *CropEditor) encode(img image.Image) (Blob, error) {
	var buf bytes.Buffer
	if e.format == "png" {
		if err := e.codec.EncodePNG(&buf, img); err != nil {
			return Blob{}, fmt.Errorf("failed to encode PNG: %w", err)
		}
		return Blob{Data: buf.Bytes(), ContentType: "image/png"}, nil
	}

	if err := e.codec.EncodeJPEG(&buf, img, jpegQuality); err != nil {
		return Blob{}, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return Blob{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}

func (e *CropEditor) croppedFilename(contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	base := strings.TrimSuffix(e.srcName, filepath.Ext(e.srcName))
	if base == "" {
		base = "cropped"
	}
	return base + "-cropped" + ext
}

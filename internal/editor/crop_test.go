package editor_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/editor"
)

// testImage renders a flat-color raster for decode/encode round trips
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

// twoTonePNG renders a raster with a red top half and a blue bottom half so
// rotation is observable in the committed pixels
func twoTonePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.NRGBA{R: 200, G: 40, B: 40, A: 255}
		if y >= h/2 {
			c = color.NRGBA{R: 40, G: 40, B: 200, A: 255}
		}
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return buf.Bytes()
}

func newCropEditor(t *testing.T, src []byte, name string, aspect float64) *editor.CropEditor {
	t.Helper()
	ed, err := editor.NewCropEditor("item-1", name, bytes.NewReader(src), adapter.NewImageCodec(), aspect)
	require.NoError(t, err)
	return ed
}

func TestNewCropEditor_InvalidSource(t *testing.T) {
	_, err := editor.NewCropEditor("item-1", "bogus.bin", bytes.NewReader([]byte("not an image")), adapter.NewImageCodec(), 0)
	assert.Error(t, err)
}

func TestNewCropEditor_PreselectedAspectCentersRegion(t *testing.T) {
	// 200x100 source, square aspect: the region covers 90% of the shorter
	// dimension and is centered
	ed := newCropEditor(t, pngBytes(t, 200, 100), "lot.png", 1.0)

	region, ok := ed.Region()
	require.True(t, ok)
	assert.Equal(t, editor.Rect{X: 55, Y: 5, W: 90, H: 90}, region)
}

func TestNewCropEditor_NoAspectStartsUnset(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 100), "lot.png", 0)

	_, ok := ed.Region()
	assert.False(t, ok)
}

func TestSetRegion_Validation(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 80), "lot.png", 0)

	tests := []struct {
		name    string
		region  editor.Rect
		wantErr error
	}{
		{"valid region", editor.Rect{X: 10, Y: 10, W: 50, H: 40}, nil},
		{"zero width", editor.Rect{X: 10, Y: 10, W: 0, H: 40}, editor.ErrEmptyCropRegion},
		{"negative origin", editor.Rect{X: -1, Y: 10, W: 50, H: 40}, editor.ErrRegionOutOfBounds},
		{"overflows right edge", editor.Rect{X: 60, Y: 10, W: 50, H: 40}, editor.ErrRegionOutOfBounds},
		{"overflows bottom edge", editor.Rect{X: 10, Y: 50, W: 50, H: 40}, editor.ErrRegionOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ed.SetRegion(tt.region)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommit_OutputCoversExactlyTheRegion(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 200, 150), "lot.png", 0)
	require.NoError(t, ed.SetRegion(editor.Rect{X: 20, Y: 10, W: 60, H: 40}))

	result, err := ed.Commit()
	require.NoError(t, err)

	assert.Equal(t, 60, result.Width)
	assert.Equal(t, 40, result.Height)
	assert.Equal(t, "image/png", result.Blob.ContentType)
	assert.Equal(t, "lot-cropped.png", result.Filename)

	decoded, _, err := image.Decode(bytes.NewReader(result.Blob.Data))
	require.NoError(t, err)
	assert.Equal(t, 60, decoded.Bounds().Dx())
	assert.Equal(t, 40, decoded.Bounds().Dy())
}

func TestCommit_ZoomKeepsDimensions(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 200, 150), "lot.png", 0)
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 80, H: 50}))
	ed.SetZoom(2)

	result, err := ed.Commit()
	require.NoError(t, err)

	// Zoom magnifies the pixels, not the output raster
	assert.Equal(t, 80, result.Width)
	assert.Equal(t, 50, result.Height)
}

func TestCommit_RotationKeepsCommittedDimensions(t *testing.T) {
	ed := newCropEditor(t, twoTonePNG(t, 200, 150), "lot.png", 0)
	ed.Rotate()
	require.Equal(t, 90, ed.Rotation())

	// The view is now 150x200; the rectangle keeps its own width and height
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 50, H: 50}))

	result, err := ed.Commit()
	require.NoError(t, err)
	assert.Equal(t, 50, result.Width)
	assert.Equal(t, 50, result.Height)

	decoded, _, err := image.Decode(bytes.NewReader(result.Blob.Data))
	require.NoError(t, err)
	assert.Equal(t, 50, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())

	// A clockwise turn brings the source's bottom rows under the view's
	// top-left corner
	got := color.NRGBAModel.Convert(decoded.At(10, 10)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 40, G: 40, B: 200, A: 255}, got)
}

func TestCommit_RotationPushesRegionOutsideView(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 200, 150), "lot.png", 0)
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 180, H: 100}))
	ed.Rotate() // view is 150x200; the rectangle overflows the right edge

	_, err := ed.Commit()
	require.Error(t, err)
	assert.ErrorIs(t, err, editor.ErrRegionOutOfBounds)

	// New rectangles are validated against the rotated view
	assert.ErrorIs(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 160, H: 100}), editor.ErrRegionOutOfBounds)

	// The editor stays usable: a rectangle inside the rotated view commits
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 140, H: 100}))
	result, err := ed.Commit()
	require.NoError(t, err)
	assert.Equal(t, 140, result.Width)
	assert.Equal(t, 100, result.Height)
}

func TestCommit_WithoutRegionFails(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 100), "lot.png", 0)

	_, err := ed.Commit()
	require.Error(t, err)

	var commitErr *domain.EditorCommitError
	require.True(t, errors.As(err, &commitErr))
	assert.ErrorIs(t, err, editor.ErrEmptyCropRegion)

	// Failure leaves the editor usable: set a region and retry
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 10, H: 10}))
	_, err = ed.Commit()
	assert.NoError(t, err)
}

func TestCommit_JPEGSourceEncodesJPEG(t *testing.T) {
	ed := newCropEditor(t, jpegBytes(t, 120, 90), "car.jpg", 0)
	require.NoError(t, ed.SetRegion(editor.Rect{X: 0, Y: 0, W: 30, H: 30}))

	result, err := ed.Commit()
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", result.Blob.ContentType)
	assert.Equal(t, "car-cropped.jpg", result.Filename)
}

func TestSetAspectRatio_RecomputesCenteredRegion(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 100), "lot.png", 0)
	require.NoError(t, ed.SetRegion(editor.Rect{X: 1, Y: 2, W: 3, H: 4}))

	ed.SetAspectRatio(1.0)

	region, ok := ed.Region()
	require.True(t, ok)
	assert.Equal(t, editor.Rect{X: 5, Y: 5, W: 90, H: 90}, region)
}

func TestReset_RestoresDefaults(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 100), "lot.png", 1.0)
	ed.SetZoom(3)
	ed.Rotate()

	ed.Reset()

	_, ok := ed.Region()
	assert.False(t, ok)
	assert.Equal(t, 1.0, ed.Zoom())
	assert.Equal(t, 0, ed.Rotation())
}

func TestSetZoom_ClampsBelowOne(t *testing.T) {
	ed := newCropEditor(t, pngBytes(t, 100, 100), "lot.png", 0)
	ed.SetZoom(0.25)
	assert.Equal(t, 1.0, ed.Zoom())
}

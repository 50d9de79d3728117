package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
)

var (
	// ErrInvalidBounds is returned when a trim bound update would break the
	// start < end invariant; the prior valid bounds are retained
	ErrInvalidBounds = errors.New("invalid trim bounds")

	// ErrNoDuration is returned when a trim session is started for a video
	// with an unknown or zero duration
	ErrNoDuration = errors.New("video duration must be positive")
)

// DefaultMinimumSpan is the smallest trim window, in seconds
const DefaultMinimumSpan = 0.5

// FrameGrabber extracts a still frame from a video at a given timestamp.
// Decoding the video stream is the host environment's concern; in a browser
// shell this is a seek-and-draw against a video surface, on a server it is a
// transcoder call.
//
//go:generate mockgen -source=trim.go -destination=../mocks/framegrabber.go -package=mocks -mock_names=FrameGrabber=MockFrameGrabber
type FrameGrabber interface {
	Frame(ctx context.Context, timestamp float64) (image.Image, error)
}

// TrimResult carries the trim instructions and optional thumbnail produced by
// a commit. Re-encoding the byte stream to the kept window is delegated to an
// external transcoding collaborator; the editor's responsibility ends here.
type TrimResult struct {
	Session   Session
	Start     float64
	End       float64
	Thumbnail *Blob
}

// TrimEditor holds the state of a video trim session. The invariant
// 0 <= start < end <= duration holds at all times; playback is constrained to
// the [start, end] window as a closed-loop preview of the kept segment.
type TrimEditor struct {
	session Session
	grabber FrameGrabber
	codec   adapter.ImageCodec

	duration float64
	minSpan  float64

	current float64
	playing bool

	start float64
	end   float64

	thumbTime    float64
	thumbCapture *Handle
}

// NewTrimEditor starts a trim session spanning the full video
func NewTrimEditor(itemID string, duration float64, grabber FrameGrabber, codec adapter.ImageCodec) (*TrimEditor, error) {
	if duration <= 0 {
		return nil, ErrNoDuration
	}

	minSpan := DefaultMinimumSpan
	if minSpan > duration {
		minSpan = duration
	}

	return &TrimEditor{
		session:  NewSession(itemID),
		grabber:  grabber,
		codec:    codec,
		duration: duration,
		minSpan:  minSpan,
		end:      duration,
	}, nil
}

// Session returns the editing session identity
func (e *TrimEditor) Session() Session {
	return e.session
}

// Bounds returns the current trim window
func (e *TrimEditor) Bounds() (start, end float64) {
	return e.start, e.end
}

// Duration returns the source video duration in seconds
func (e *TrimEditor) Duration() float64 {
	return e.duration
}

// CurrentTime returns the playback position
func (e *TrimEditor) CurrentTime() float64 {
	return e.current
}

// IsPlaying reports whether preview playback is running
func (e *TrimEditor) IsPlaying() bool {
	return e.playing
}

// SetStart moves the trim start. Values at or beyond the end bound are
// rejected and the prior bounds retained; values inside the minimum span are
// clamped below end - minimumSpan.
func (e *TrimEditor) SetStart(t float64) error {
	if t < 0 || t >= e.end {
		return ErrInvalidBounds
	}
	if t > e.end-e.minSpan {
		t = e.end - e.minSpan
	}
	if t < 0 {
		t = 0
	}

	e.start = t
	if e.current < e.start {
		e.current = e.start
	}
	return nil
}

// SetEnd moves the trim end. Values at or below the start bound, or beyond
// the duration, are rejected and the prior bounds retained; values inside the
// minimum span are clamped above start + minimumSpan.
func (e *TrimEditor) SetEnd(t float64) error {
	if t <= e.start || t > e.duration {
		return ErrInvalidBounds
	}
	if t < e.start+e.minSpan {
		t = e.start + e.minSpan
	}
	if t > e.duration {
		t = e.duration
	}

	e.end = t
	if e.current > e.end {
		e.current = e.end
	}
	return nil
}

// Seek moves the playhead, clamped to the video
func (e *TrimEditor) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if t > e.duration {
		t = e.duration
	}
	e.current = t
}

// Play starts preview playback from inside the trim window
func (e *TrimEditor) Play() {
	if e.current < e.start || e.current >= e.end {
		e.current = e.start
	}
	e.playing = true
}

// Pause stops preview playback
func (e *TrimEditor) Pause() {
	e.playing = false
}

// Advance moves playback forward by dt seconds. Reaching the end of the trim
// window pauses and rewinds to the start: the preview loops over the kept
// segment rather than signalling completion.
func (e *TrimEditor) Advance(dt float64) {
	if !e.playing || dt <= 0 {
		return
	}

	e.current += dt
	if e.current >= e.end {
		e.playing = false
		e.current = e.start
	}
}

// CaptureThumbnail grabs a still frame at the current playback position and
// encodes it as a JPEG blob. The capture position is independent of the trim
// window: the operator may pick a thumbnail from outside the kept segment.
// A previously captured thumbnail handle is released.
func (e *TrimEditor) CaptureThumbnail(ctx context.Context) error {
	frame, err := e.grabber.Frame(ctx, e.current)
	if err != nil {
		return fmt.Errorf("failed to grab frame at %.2fs: %w", e.current, err)
	}

	var buf bytes.Buffer
	if err := e.codec.EncodeJPEG(&buf, frame, jpegQuality); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if e.thumbCapture != nil {
		e.thumbCapture.Release()
	}
	e.thumbTime = e.current
	e.thumbCapture = NewHandle(Blob{Data: buf.Bytes(), ContentType: "image/jpeg"})
	return nil
}

// ThumbnailTime returns the position the current thumbnail was captured at
func (e *TrimEditor) ThumbnailTime() float64 {
	return e.thumbTime
}

// HasThumbnail reports whether a live thumbnail capture exists
func (e *TrimEditor) HasThumbnail() bool {
	if e.thumbCapture == nil {
		return false
	}
	_, ok := e.thumbCapture.Blob()
	return ok
}

// Commit produces the trim instructions and the captured thumbnail, if any.
// The invariant 0 <= start < end <= duration is re-checked as a guard; a
// violation here is a programming error.
func (e *TrimEditor) Commit() (*TrimResult, error) {
	if e.start < 0 || e.start >= e.end || e.end > e.duration {
		return nil, &domain.EditorCommitError{
			Op:  "trim",
			Err: &domain.InvariantViolation{Msg: fmt.Sprintf("trim window [%.2f, %.2f] outside [0, %.2f]", e.start, e.end, e.duration)},
		}
	}

	result := &TrimResult{
		Session: e.session,
		Start:   e.start,
		End:     e.end,
	}
	if e.thumbCapture != nil {
		if blob, ok := e.thumbCapture.Blob(); ok {
			result.Thumbnail = &blob
		}
	}
	return result, nil
}

// Close releases the thumbnail capture handle
func (e *TrimEditor) Close() {
	if e.thumbCapture != nil {
		e.thumbCapture.Release()
	}
}

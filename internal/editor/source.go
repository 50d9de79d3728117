// Package editor contains the two local transform editors: the image crop
// editor and the video trim editor. Editors operate on one selected item at a
// time and hand their result to a save callback; they never mutate the
// catalog themselves.
package editor

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Blob is an in-memory byte blob together with its MIME type
type Blob struct {
	Data        []byte
	ContentType string
}

// Len returns the blob size in bytes
func (b Blob) Len() int64 {
	return int64(len(b.Data))
}

// Handle is a releasable reference to locally created bytes, the in-process
// analog of a browser object URL. Handles superseded by a newer commit or
// capture must be released so transient byte buffers do not accumulate
// across repeated edits.
type Handle struct {
	mu       sync.Mutex
	blob     *Blob
	released bool
}

// NewHandle wraps a blob in a releasable handle
func NewHandle(blob Blob) *Handle {
	return &Handle{blob: &blob}
}

// Blob returns the referenced bytes. ok is false once the handle is released.
func (h *Handle) Blob() (Blob, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released || h.blob == nil {
		return Blob{}, false
	}
	return *h.blob, true
}

// Release drops the reference. Releasing twice is a no-op.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.blob = nil
	h.released = true
}

// Released reports whether the handle has been released
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.released
}

// Session identifies one editing session of one item. Commits carry the
// session so callers can discard results that arrive after the operator has
// navigated away (stale-result discard keyed by item id and session id).
type Session struct {
	ID     string
	ItemID string
}

// NewSession creates a session for the given item with a sortable unique id
func NewSession(itemID string) Session {
	return Session{
		ID:     ulid.Make().String(),
		ItemID: itemID,
	}
}

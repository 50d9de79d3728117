package domain

import (
	"strings"
	"time"
)

// MediaType represents the kind of a media asset
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"

	// MediaTypeAll is only valid as a filter value and matches every type
	MediaTypeAll MediaType = "all"
)

// IsValidMediaType checks if a media type is a concrete asset type
func IsValidMediaType(t MediaType) bool {
	return t == MediaTypeImage || t == MediaTypeVideo || t == MediaTypeDocument
}

// DetectType maps a MIME type to a MediaType. Unrecognized kinds fall back to document.
func DetectType(mimeType string) MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return MediaTypeVideo
	default:
		return MediaTypeDocument
	}
}

// Dimensions holds pixel dimensions of raster or video content
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MediaItem represents a single catalog asset.
// Type is immutable once created; Size and UpdatedAt are restamped whenever
// the underlying bytes change (crop, trim).
type MediaItem struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	URL          string      `json:"url"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	Type         MediaType   `json:"type"`
	Size         int64       `json:"size"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
	// Duration is in seconds, video only
	Duration    *float64  `json:"duration,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Folder      string    `json:"folder"`
	Tags        []string  `json:"tags,omitempty"`
	Alt         string    `json:"alt,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Clone returns a deep copy of the item
func (m MediaItem) Clone() MediaItem {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.Dimensions != nil {
		d := *m.Dimensions
		out.Dimensions = &d
	}
	if m.Duration != nil {
		d := *m.Duration
		out.Duration = &d
	}
	return out
}

// HasTag reports whether the item carries the given tag (case-sensitive)
func (m MediaItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags collapses duplicates and drops empty entries, preserving
// first-seen order
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// MediaFolder represents an organizational bucket for media items.
// Path is derived (slash-joined ancestor names). ItemCount is a cached count
// and must equal the number of items whose Folder field references this folder.
type MediaFolder struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ParentFolder *string   `json:"parent_folder,omitempty"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RootFolderID is the identifier of the default folder. Every item belongs to
// exactly one folder; items created without an explicit folder land here.
const RootFolderID = "root"

// SortKey selects the field the visible view is ordered by
type SortKey string

const (
	SortByName SortKey = "name"
	SortBySize SortKey = "size"
	SortByDate SortKey = "date"
)

// SortOrder selects ascending or descending direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterState drives the derived grid view. It is ephemeral UI state and never
// mutates the catalog.
type FilterState struct {
	SearchQuery   string
	TypeFilter    MediaType
	SortBy        SortKey
	SortOrder     SortOrder
	CurrentFolder string
}

// DefaultFilterState returns the initial browsing state for a folder
func DefaultFilterState(folderID string) FilterState {
	return FilterState{
		TypeFilter:    MediaTypeAll,
		SortBy:        SortByDate,
		SortOrder:     SortDesc,
		CurrentFolder: folderID,
	}
}

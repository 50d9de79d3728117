package domain

import "time"

// MediaEventType represents the type of catalog mutation event
type MediaEventType string

const (
	MediaEventUploaded MediaEventType = "uploaded"
	MediaEventUpdated  MediaEventType = "updated"
	MediaEventDeleted  MediaEventType = "deleted"
	MediaEventMoved    MediaEventType = "moved"
)

// MediaEvent is the normalized event payload published to the message broker
// after a catalog mutation is persisted
type MediaEvent struct {
	Type      MediaEventType `json:"type"`
	ItemIDs   []string       `json:"item_ids"`
	FolderID  string         `json:"folder_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MediaKind represents the broad media category of a file
type MediaKind string

// String returns the media kind name
func (k MediaKind) String() string {
	return string(k)
}

const (
	// MediaKindImage represents raster image files
	MediaKindImage MediaKind = "image"
	// MediaKindVideo represents video files
	MediaKindVideo MediaKind = "video"
	// MediaKindDocument represents everything else (PDFs, spreadsheets, ...)
	MediaKindDocument MediaKind = "document"
)

// MediaFile represents the media_files table - one uploaded asset and its metadata
type MediaFile struct {
	// ID is the ULID primary key, assigned at upload time
	ID string `gorm:"column:id;primaryKey;type:text"`

	// Name is the display name shown in the library
	Name string `gorm:"column:name;not null;type:text;index:idx_media_files_name"`
	// MimeType is the sniffed MIME type of the stored bytes
	MimeType string `gorm:"column:mime_type;not null;type:text"`
	// Kind is the broad category derived from the MIME type
	Kind MediaKind `gorm:"column:kind;not null;type:text;index:idx_media_files_kind"`
	// SizeBytes is the stored file size in bytes
	SizeBytes int64 `gorm:"column:size_bytes;not null"`

	// Width and Height are set for images
	Width  *int `gorm:"column:width"`
	Height *int `gorm:"column:height"`
	// DurationSeconds is set for videos
	DurationSeconds *float64 `gorm:"column:duration_seconds"`

	// FolderID references the containing folder
	FolderID string `gorm:"column:folder_id;not null;type:text;index:idx_media_files_folder_id"`

	// Tags stores the normalized tag list as JSON
	Tags datatypes.JSON `gorm:"column:tags;type:jsonb"`
	// Alt is the accessibility text
	Alt string `gorm:"column:alt;type:text"`
	// Description is free-form descriptive text
	Description string `gorm:"column:description;type:text"`

	// StoragePath is the file's location relative to the storage root
	StoragePath string `gorm:"column:storage_path;not null;type:text"`
	// ThumbnailPath is the generated or captured thumbnail's location, if any
	ThumbnailPath *string `gorm:"column:thumbnail_path;type:text"`

	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_media_files_created_at"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MediaFile model
func (MediaFile) TableName() string {
	return "media_files"
}

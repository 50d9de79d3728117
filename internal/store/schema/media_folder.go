package schema

import "time"

// RootFolderID is the fixed id of the folder every file belongs to by default
const RootFolderID = "root"

// MediaFolder represents the media_folders table
type MediaFolder struct {
	// ID is the ULID primary key; the root folder uses the fixed id "root"
	ID string `gorm:"column:id;primaryKey;type:text"`

	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Path is the display path from the root, e.g. /inventory/2026
	Path string `gorm:"column:path;not null;type:text"`
	// ParentID references the containing folder; nil for top-level folders
	ParentID *string `gorm:"column:parent_id;type:text;index:idx_media_folders_parent_id"`

	// ItemCount caches the number of files directly in this folder. It is
	// maintained in the same transaction as every file mutation.
	ItemCount int `gorm:"column:item_count;not null;default:0"`

	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MediaFolder model
func (MediaFolder) TableName() string {
	return "media_folders"
}

package rest

import (
	"encoding/json"
	"time"

	"github.com/dealerpress/media-library/internal/storage"
	"github.com/dealerpress/media-library/internal/store/schema"
)

// FileDTO is the wire representation of a media file. Its shape matches what
// the client library unmarshals into its catalog items.
type FileDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Type         string         `json:"type"`
	Size         int64          `json:"size"`
	Dimensions   *DimensionsDTO `json:"dimensions,omitempty"`
	Duration     *float64       `json:"duration,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Folder       string         `json:"folder"`
	Tags         []string       `json:"tags,omitempty"`
	Alt          string         `json:"alt,omitempty"`
	Description  string         `json:"description,omitempty"`
}

// DimensionsDTO carries pixel dimensions
type DimensionsDTO struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FolderDTO is the wire representation of a media folder
type FolderDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ParentFolder *string   `json:"parent_folder,omitempty"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PageDTO is one page of a file listing
type PageDTO struct {
	Items []FileDTO `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// toFileDTO maps a stored file onto its wire representation
func toFileDTO(file *schema.MediaFile, store storage.Storage) FileDTO {
	dto := FileDTO{
		ID:          file.ID,
		Name:        file.Name,
		URL:         store.URL(file.StoragePath),
		Type:        string(file.Kind),
		Size:        file.SizeBytes,
		Duration:    file.DurationSeconds,
		CreatedAt:   file.CreatedAt,
		UpdatedAt:   file.UpdatedAt,
		Folder:      file.FolderID,
		Alt:         file.Alt,
		Description: file.Description,
	}

	if file.ThumbnailPath != nil {
		dto.ThumbnailURL = store.URL(*file.ThumbnailPath)
	}
	if file.Width != nil && file.Height != nil {
		dto.Dimensions = &DimensionsDTO{Width: *file.Width, Height: *file.Height}
	}
	if len(file.Tags) > 0 {
		// Tags are stored as a JSON array; a corrupt value is surfaced as no tags
		_ = json.Unmarshal(file.Tags, &dto.Tags)
	}

	return dto
}

// toFolderDTO maps a stored folder onto its wire representation
func toFolderDTO(folder *schema.MediaFolder) FolderDTO {
	return FolderDTO{
		ID:           folder.ID,
		Name:         folder.Name,
		Path:         folder.Path,
		ParentFolder: folder.ParentID,
		ItemCount:    folder.ItemCount,
		CreatedAt:    folder.CreatedAt,
		UpdatedAt:    folder.UpdatedAt,
	}
}

// Package store persists media files and folders for the reference media
// service.
package store

import (
	"context"
	"errors"

	"github.com/dealerpress/media-library/internal/store/schema"
)

var (
	// ErrFolderNotFound is returned when an operation references a folder
	// that does not exist
	ErrFolderNotFound = errors.New("folder not found")

	// ErrRootFolderImmutable is returned when an operation tries to rename
	// or delete the root folder
	ErrRootFolderImmutable = errors.New("the root folder cannot be modified")
)

// FileQuery narrows and orders a file listing
type FileQuery struct {
	FolderID string
	Kind     schema.MediaKind
	// Search matches case-insensitively against names and tags
	Search string
	// SortBy is one of name, size, date
	SortBy string
	// SortOrder is asc or desc; empty uses the sort key's natural direction
	SortOrder string
	Page      int
	Limit     int
}

// FileUpdate is a partial file metadata update; nil fields are left unchanged
type FileUpdate struct {
	Name          *string
	Alt           *string
	Description   *string
	FolderID      *string
	Tags          []string
	ThumbnailPath *string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateFile inserts a file and increments its folder's item count
	CreateFile(ctx context.Context, file *schema.MediaFile) error
	// GetFile retrieves a file by id; a missing id returns (nil, nil)
	GetFile(ctx context.Context, id string) (*schema.MediaFile, error)
	// ListFiles returns one page of files plus the total match count
	ListFiles(ctx context.Context, query FileQuery) ([]schema.MediaFile, int64, error)
	// UpdateFile applies a partial update, adjusting folder counts when the
	// file moves
	UpdateFile(ctx context.Context, id string, update FileUpdate) (*schema.MediaFile, error)
	// DeleteFiles removes the given files and decrements their folder counts.
	// It returns the deleted records so the caller can remove stored bytes.
	DeleteFiles(ctx context.Context, ids []string) ([]schema.MediaFile, error)
	// MoveFiles reassigns files to a folder, keeping counts consistent
	MoveFiles(ctx context.Context, ids []string, folderID string) error

	// ListFolders returns every folder
	ListFolders(ctx context.Context) ([]schema.MediaFolder, error)
	// GetFolder retrieves a folder by id; a missing id returns (nil, nil)
	GetFolder(ctx context.Context, id string) (*schema.MediaFolder, error)
	// CreateFolder inserts a folder
	CreateFolder(ctx context.Context, folder *schema.MediaFolder) error
	// UpdateFolderName renames a folder
	UpdateFolderName(ctx context.Context, id string, name string) (*schema.MediaFolder, error)
	// DeleteFolder removes a folder. With deleteContents the folder's files
	// are removed and returned; otherwise they move to the root folder.
	DeleteFolder(ctx context.Context, id string, deleteContents bool) ([]schema.MediaFile, error)
}

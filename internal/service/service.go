// Package service defines the boundary with the remote media service and a
// REST client for it. The library consumes this interface; tests substitute a
// mock.
package service

import (
	"context"

	"github.com/dealerpress/media-library/internal/domain"
)

// ListFilter narrows and orders a file listing
type ListFilter struct {
	Folder    string
	Type      domain.MediaType
	Search    string
	SortBy    domain.SortKey
	SortOrder domain.SortOrder
	Page      int
	Limit     int
}

// Page is one page of a file listing
type Page struct {
	Items []domain.MediaItem `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// UploadInput carries one local file to the service
type UploadInput struct {
	Name        string
	ContentType string
	Data        []byte
	Folder      string
	Alt         string
}

// FileUpdate is a partial metadata update; nil fields are left unchanged
type FileUpdate struct {
	Name   *string
	Alt    *string
	Folder *string
	Tags   []string
}

// Client is the remote media service boundary
//
//go:generate mockgen -source=service.go -destination=../mocks/service.go -package=mocks -mock_names=Client=MockServiceClient
type Client interface {
	// ListFiles returns a paginated, filtered file listing
	ListFiles(ctx context.Context, filter ListFilter) (*Page, error)

	// UploadFile transfers one file and returns the materialized item
	UploadFile(ctx context.Context, input UploadInput) (*domain.MediaItem, error)

	// UploadFiles transfers several files; it stops at the first failure.
	// The upload pipeline calls UploadFile per file when it needs per-file
	// failure isolation.
	UploadFiles(ctx context.Context, inputs []UploadInput) ([]domain.MediaItem, error)

	// UpdateFile applies a partial metadata update
	UpdateFile(ctx context.Context, id string, update FileUpdate) (*domain.MediaItem, error)

	// DeleteFile removes one file
	DeleteFile(ctx context.Context, id string) error

	// DeleteFiles removes several files
	DeleteFiles(ctx context.Context, ids []string) error

	// ListFolders returns all folders
	ListFolders(ctx context.Context) ([]domain.MediaFolder, error)

	// CreateFolder creates a folder, optionally nested under a parent
	CreateFolder(ctx context.Context, name string, parentID *string) (*domain.MediaFolder, error)

	// UpdateFolder renames a folder
	UpdateFolder(ctx context.Context, id, name string) (*domain.MediaFolder, error)

	// DeleteFolder removes a folder; deleteContents controls whether its
	// items are removed or moved to the root folder
	DeleteFolder(ctx context.Context, id string, deleteContents bool) error

	// MoveFilesToFolder reassigns files to a target folder
	MoveFilesToFolder(ctx context.Context, ids []string, targetFolderID string) error
}

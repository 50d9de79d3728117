package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/messaging"
	"github.com/dealerpress/media-library/internal/storage"
	"github.com/dealerpress/media-library/internal/store"
	"github.com/dealerpress/media-library/internal/store/schema"
	"github.com/dealerpress/media-library/internal/thumbnail"
)

// Handler handles REST API requests
type Handler struct {
	store       store.Store
	blobs       storage.Storage
	publisher   messaging.Publisher
	thumbs      *thumbnail.Generator
	maxFileSize int64
	clock       adapter.Clock
}

// NewHandler creates a new REST handler. publisher may be nil when no broker
// is configured; events are then skipped.
func NewHandler(st store.Store, blobs storage.Storage, publisher messaging.Publisher, thumbs *thumbnail.Generator, maxFileSize int64) *Handler {
	return &Handler{
		store:       st,
		blobs:       blobs,
		publisher:   publisher,
		thumbs:      thumbs,
		maxFileSize: maxFileSize,
		clock:       adapter.NewClock(),
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListFiles handles GET /api/v1/files
func (h *Handler) ListFiles(c *gin.Context) {
	query := store.FileQuery{
		FolderID:  c.Query("folder"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if t := c.Query("type"); t != "" && t != "all" {
		query.Kind = schema.MediaKind(t)
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		query.Limit = limit
	}

	files, total, err := h.store.ListFiles(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "Failed to list files")
		return
	}

	items := make([]FileDTO, 0, len(files))
	for i := range files {
		items = append(items, toFileDTO(&files[i], h.blobs))
	}

	c.JSON(http.StatusOK, PageDTO{
		Items: items,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

// GetFile handles GET /api/v1/files/:id
func (h *Handler) GetFile(c *gin.Context) {
	file, err := h.store.GetFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "Failed to get file")
		return
	}
	if file == nil {
		respondNotFound(c, "File not found")
		return
	}

	c.JSON(http.StatusOK, toFileDTO(file, h.blobs))
}

// UploadFile handles POST /api/v1/files (multipart)
func (h *Handler) UploadFile(c *gin.Context) {
	src, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "A file part is required", err.Error())
		return
	}
	defer func() {
		_ = src.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		respondInternalError(c, err, "Failed to read upload")
		return
	}
	if len(data) == 0 {
		respondValidationError(c, "file is empty")
		return
	}
	if int64(len(data)) > h.maxFileSize {
		respondValidationError(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxFileSize))
		return
	}

	mtype := mimetype.Detect(data)
	kind := schema.MediaKind(domain.DetectType(mtype.String()))

	id := ulid.Make().String()
	storagePath := id + mtype.Extension()

	file := &schema.MediaFile{
		ID:          id,
		Name:        header.Filename,
		MimeType:    mtype.String(),
		Kind:        kind,
		SizeBytes:   int64(len(data)),
		FolderID:    c.PostForm("folder"),
		Alt:         c.PostForm("alt"),
		StoragePath: storagePath,
	}

	if err := h.blobs.Save(storagePath, data); err != nil {
		respondInternalError(c, err, "Failed to store file")
		return
	}

	// Image uploads get dimensions and a derived thumbnail; video thumbnails
	// require an explicit capture through the editing pipeline.
	if kind == schema.MediaKindImage {
		if result, err := h.thumbs.Generate(data); err != nil {
			logger.Warn("thumbnail generation failed",
				zap.String("file", id),
				zap.Error(err),
			)
		} else {
			thumbPath := id + "-thumb.jpg"
			if err := h.blobs.Save(thumbPath, result.Data); err != nil {
				respondInternalError(c, err, "Failed to store thumbnail")
				return
			}
			file.ThumbnailPath = &thumbPath
			file.Width = &result.SourceWidth
			file.Height = &result.SourceHeight
		}
	}

	if err := h.store.CreateFile(c.Request.Context(), file); err != nil {
		_ = h.blobs.Remove(storagePath)
		if errors.Is(err, store.ErrFolderNotFound) {
			respondBadRequest(c, "Target folder does not exist")
			return
		}
		respondInternalError(c, err, "Failed to create file record")
		return
	}

	h.publish(c, domain.MediaEventUploaded, []string{id}, file.FolderID)
	c.JSON(http.StatusCreated, toFileDTO(file, h.blobs))
}

// updateFileRequest is the PATCH /files/:id body; absent fields stay unchanged
type updateFileRequest struct {
	Name        *string  `json:"name"`
	Alt         *string  `json:"alt"`
	Description *string  `json:"description"`
	Folder      *string  `json:"folder"`
	Tags        []string `json:"tags"`
}

// UpdateFile handles PATCH /api/v1/files/:id
func (h *Handler) UpdateFile(c *gin.Context) {
	var req updateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	id := c.Param("id")
	update := store.FileUpdate{
		Name:        req.Name,
		Alt:         req.Alt,
		Description: req.Description,
		FolderID:    req.Folder,
	}
	if req.Tags != nil {
		update.Tags = domain.NormalizeTags(req.Tags)
	}

	file, err := h.store.UpdateFile(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, store.ErrFolderNotFound) {
			respondBadRequest(c, "Target folder does not exist")
			return
		}
		respondInternalError(c, err, "Failed to update file")
		return
	}
	if file == nil {
		respondNotFound(c, "File not found")
		return
	}

	event := domain.MediaEventUpdated
	if req.Folder != nil {
		event = domain.MediaEventMoved
	}
	h.publish(c, event, []string{id}, file.FolderID)
	c.JSON(http.StatusOK, toFileDTO(file, h.blobs))
}

// DeleteFile handles DELETE /api/v1/files/:id
func (h *Handler) DeleteFile(c *gin.Context) {
	h.deleteFiles(c, []string{c.Param("id")})
}

// deleteFilesRequest is the POST /files/delete body
type deleteFilesRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// DeleteFiles handles POST /api/v1/files/delete
func (h *Handler) DeleteFiles(c *gin.Context) {
	var req deleteFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	h.deleteFiles(c, req.IDs)
}

func (h *Handler) deleteFiles(c *gin.Context, ids []string) {
	deleted, err := h.store.DeleteFiles(c.Request.Context(), ids)
	if err != nil {
		respondInternalError(c, err, "Failed to delete files")
		return
	}

	h.removeBlobs(deleted)

	if len(deleted) > 0 {
		removed := make([]string, 0, len(deleted))
		for _, f := range deleted {
			removed = append(removed, f.ID)
		}
		h.publish(c, domain.MediaEventDeleted, removed, "")
	}
	c.JSON(http.StatusOK, gin.H{"deleted": len(deleted)})
}

// moveFilesRequest is the POST /files/move body
type moveFilesRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Folder string   `json:"folder" binding:"required"`
}

// MoveFiles handles POST /api/v1/files/move
func (h *Handler) MoveFiles(c *gin.Context) {
	var req moveFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.store.MoveFiles(c.Request.Context(), req.IDs, req.Folder); err != nil {
		if errors.Is(err, store.ErrFolderNotFound) {
			respondBadRequest(c, "Target folder does not exist")
			return
		}
		respondInternalError(c, err, "Failed to move files")
		return
	}

	h.publish(c, domain.MediaEventMoved, req.IDs, req.Folder)
	c.JSON(http.StatusOK, gin.H{"moved": len(req.IDs)})
}

// ListFolders handles GET /api/v1/folders
func (h *Handler) ListFolders(c *gin.Context) {
	folders, err := h.store.ListFolders(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list folders")
		return
	}

	out := make([]FolderDTO, 0, len(folders))
	for i := range folders {
		out = append(out, toFolderDTO(&folders[i]))
	}
	c.JSON(http.StatusOK, out)
}

// createFolderRequest is the POST /folders body
type createFolderRequest struct {
	Name         string  `json:"name" binding:"required"`
	ParentFolder *string `json:"parent_folder"`
}

// CreateFolder handles POST /api/v1/folders
func (h *Handler) CreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	folder := &schema.MediaFolder{
		ID:       ulid.Make().String(),
		Name:     req.Name,
		ParentID: req.ParentFolder,
	}
	if err := h.store.CreateFolder(c.Request.Context(), folder); err != nil {
		if errors.Is(err, store.ErrFolderNotFound) {
			respondBadRequest(c, "Parent folder does not exist")
			return
		}
		respondInternalError(c, err, "Failed to create folder")
		return
	}

	c.JSON(http.StatusCreated, toFolderDTO(folder))
}

// updateFolderRequest is the PATCH /folders/:id body
type updateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateFolder handles PATCH /api/v1/folders/:id
func (h *Handler) UpdateFolder(c *gin.Context) {
	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	folder, err := h.store.UpdateFolderName(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrRootFolderImmutable) {
			respondBadRequest(c, "The root folder cannot be renamed")
			return
		}
		respondInternalError(c, err, "Failed to rename folder")
		return
	}
	if folder == nil {
		respondNotFound(c, "Folder not found")
		return
	}

	c.JSON(http.StatusOK, toFolderDTO(folder))
}

// DeleteFolder handles DELETE /api/v1/folders/:id
func (h *Handler) DeleteFolder(c *gin.Context) {
	deleteContents := c.Query("delete_contents") == "true"

	removed, err := h.store.DeleteFolder(c.Request.Context(), c.Param("id"), deleteContents)
	if err != nil {
		if errors.Is(err, store.ErrRootFolderImmutable) {
			respondBadRequest(c, "The root folder cannot be deleted")
			return
		}
		if errors.Is(err, store.ErrFolderNotFound) {
			respondNotFound(c, "Folder not found")
			return
		}
		respondInternalError(c, err, "Failed to delete folder")
		return
	}

	h.removeBlobs(removed)

	if len(removed) > 0 {
		ids := make([]string, 0, len(removed))
		for _, f := range removed {
			ids = append(ids, f.ID)
		}
		h.publish(c, domain.MediaEventDeleted, ids, "")
	}
	c.JSON(http.StatusOK, gin.H{"deleted_files": len(removed)})
}

// removeBlobs deletes stored bytes for the given records. Blob removal is
// best-effort; a leftover file is preferable to a failed API response after
// the database commit.
func (h *Handler) removeBlobs(files []schema.MediaFile) {
	for _, f := range files {
		if err := h.blobs.Remove(f.StoragePath); err != nil {
			logger.Warn("failed to remove stored file", zap.String("path", f.StoragePath), zap.Error(err))
		}
		if f.ThumbnailPath != nil {
			if err := h.blobs.Remove(*f.ThumbnailPath); err != nil {
				logger.Warn("failed to remove thumbnail", zap.String("path", *f.ThumbnailPath), zap.Error(err))
			}
		}
	}
}

// publish emits a media event; failures are logged, never surfaced to the client
func (h *Handler) publish(c *gin.Context, eventType domain.MediaEventType, ids []string, folderID string) {
	if h.publisher == nil {
		return
	}

	event := &domain.MediaEvent{
		Type:      eventType,
		ItemIDs:   ids,
		FolderID:  folderID,
		Timestamp: h.clock.Now().UTC(),
	}
	if err := h.publisher.PublishEvent(c.Request.Context(), event); err != nil {
		payload, _ := json.Marshal(event)
		logger.Warn("failed to publish media event",
			zap.ByteString("event", payload),
			zap.Error(err),
		)
	}
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dealerpress/media-library/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates the tables and seeds the root folder
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schema.MediaFolder{}, &schema.MediaFile{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	root := schema.MediaFolder{
		ID:   schema.RootFolderID,
		Name: "Media Library",
		Path: "/",
	}
	if err := db.Where("id = ?", schema.RootFolderID).FirstOrCreate(&root).Error; err != nil {
		return fmt.Errorf("failed to seed root folder: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// CreateFile inserts a file and increments its folder's item count
func (s *pgStore) CreateFile(ctx context.Context, file *schema.MediaFile) error {
	if file.FolderID == "" {
		file.FolderID = schema.RootFolderID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder schema.MediaFolder
		if err := tx.Where("id = ?", file.FolderID).First(&folder).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFolderNotFound
			}
			return fmt.Errorf("failed to load folder: %w", err)
		}

		if err := tx.Create(file).Error; err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}

		return adjustItemCount(tx, file.FolderID, +1)
	})
}

// GetFile retrieves a file by id
func (s *pgStore) GetFile(ctx context.Context, id string) (*schema.MediaFile, error) {
	var file schema.MediaFile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &file, nil
}

// ListFiles returns one page of files plus the total match count
func (s *pgStore) ListFiles(ctx context.Context, query FileQuery) ([]schema.MediaFile, int64, error) {
	db := s.db.WithContext(ctx).Model(&schema.MediaFile{})

	if query.FolderID != "" {
		db = db.Where("folder_id = ?", query.FolderID)
	}
	if query.Kind != "" {
		db = db.Where("kind = ?", query.Kind)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR tags::text ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count files: %w", err)
	}

	db = db.Order(orderClause(query.SortBy, query.SortOrder))

	if query.Limit > 0 {
		db = db.Limit(query.Limit)
		if query.Page > 1 {
			db = db.Offset((query.Page - 1) * query.Limit)
		}
	}

	var files []schema.MediaFile
	if err := db.Find(&files).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list files: %w", err)
	}
	return files, total, nil
}

// orderClause maps a sort key and order onto SQL. Each key has a natural
// direction (name ascending, size and date descending) used when no explicit
// order is given.
func orderClause(sortBy, sortOrder string) string {
	column, natural := "created_at", "DESC"
	switch sortBy {
	case "name":
		column, natural = "name", "ASC"
	case "size":
		column, natural = "size_bytes", "DESC"
	case "date", "":
	}

	direction := natural
	switch sortOrder {
	case "asc":
		direction = "ASC"
	case "desc":
		direction = "DESC"
	}

	// id as tie-break keeps pagination stable
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

// UpdateFile applies a partial update, adjusting folder counts when the file moves
func (s *pgStore) UpdateFile(ctx context.Context, id string, update FileUpdate) (*schema.MediaFile, error) {
	var updated schema.MediaFile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var file schema.MediaFile
		if err := tx.Where("id = ?", id).First(&file).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return fmt.Errorf("failed to load file: %w", err)
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Alt != nil {
			updates["alt"] = *update.Alt
		}
		if update.Description != nil {
			updates["description"] = *update.Description
		}
		if update.ThumbnailPath != nil {
			updates["thumbnail_path"] = *update.ThumbnailPath
		}
		if update.Tags != nil {
			tags, err := json.Marshal(update.Tags)
			if err != nil {
				return fmt.Errorf("failed to marshal tags: %w", err)
			}
			updates["tags"] = tags
		}

		if update.FolderID != nil && *update.FolderID != file.FolderID {
			var folder schema.MediaFolder
			if err := tx.Where("id = ?", *update.FolderID).First(&folder).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFolderNotFound
				}
				return fmt.Errorf("failed to load folder: %w", err)
			}
			updates["folder_id"] = *update.FolderID

			if err := adjustItemCount(tx, file.FolderID, -1); err != nil {
				return err
			}
			if err := adjustItemCount(tx, *update.FolderID, +1); err != nil {
				return err
			}
		}

		if err := tx.Model(&schema.MediaFile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update file: %w", err)
		}

		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteFiles removes the given files and decrements their folder counts
func (s *pgStore) DeleteFiles(ctx context.Context, ids []string) ([]schema.MediaFile, error) {
	var deleted []schema.MediaFile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id IN ?", ids).Find(&deleted).Error; err != nil {
			return fmt.Errorf("failed to load files: %w", err)
		}
		if len(deleted) == 0 {
			return nil
		}

		if err := tx.Where("id IN ?", ids).Delete(&schema.MediaFile{}).Error; err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}

		perFolder := make(map[string]int)
		for _, f := range deleted {
			perFolder[f.FolderID]++
		}
		for folderID, n := range perFolder {
			if err := adjustItemCount(tx, folderID, -n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// MoveFiles reassigns files to a folder, keeping counts consistent
func (s *pgStore) MoveFiles(ctx context.Context, ids []string, folderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder schema.MediaFolder
		if err := tx.Where("id = ?", folderID).First(&folder).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFolderNotFound
			}
			return fmt.Errorf("failed to load folder: %w", err)
		}

		var files []schema.MediaFile
		if err := tx.Where("id IN ? AND folder_id <> ?", ids, folderID).Find(&files).Error; err != nil {
			return fmt.Errorf("failed to load files: %w", err)
		}
		if len(files) == 0 {
			return nil
		}

		moved := make([]string, 0, len(files))
		perFolder := make(map[string]int)
		for _, f := range files {
			moved = append(moved, f.ID)
			perFolder[f.FolderID]++
		}

		err := tx.Model(&schema.MediaFile{}).
			Where("id IN ?", moved).
			Updates(map[string]interface{}{"folder_id": folderID, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("failed to move files: %w", err)
		}

		for origin, n := range perFolder {
			if err := adjustItemCount(tx, origin, -n); err != nil {
				return err
			}
		}
		return adjustItemCount(tx, folderID, len(moved))
	})
}

// ListFolders returns every folder
func (s *pgStore) ListFolders(ctx context.Context) ([]schema.MediaFolder, error) {
	var folders []schema.MediaFolder
	if err := s.db.WithContext(ctx).Order("path ASC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// GetFolder retrieves a folder by id
func (s *pgStore) GetFolder(ctx context.Context, id string) (*schema.MediaFolder, error) {
	var folder schema.MediaFolder
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return &folder, nil
}

// CreateFolder inserts a folder
func (s *pgStore) CreateFolder(ctx context.Context, folder *schema.MediaFolder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		path := "/"
		if folder.ParentID != nil {
			var parent schema.MediaFolder
			if err := tx.Where("id = ?", *folder.ParentID).First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFolderNotFound
				}
				return fmt.Errorf("failed to load parent folder: %w", err)
			}
			path = parent.Path
		}
		if path == "/" {
			folder.Path = "/" + folder.Name
		} else {
			folder.Path = path + "/" + folder.Name
		}

		if err := tx.Create(folder).Error; err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}
		return nil
	})
}

// UpdateFolderName renames a folder and rewrites the renamed path segment in
// every descendant folder's path
func (s *pgStore) UpdateFolderName(ctx context.Context, id string, name string) (*schema.MediaFolder, error) {
	if id == schema.RootFolderID {
		return nil, ErrRootFolderImmutable
	}

	var updated schema.MediaFolder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder schema.MediaFolder
		if err := tx.Where("id = ?", id).First(&folder).Error; err != nil {
			return err
		}

		parentPath := "/"
		if i := strings.LastIndexByte(folder.Path, '/'); i > 0 {
			parentPath = folder.Path[:i]
		}
		path := parentPath + "/" + name
		if parentPath == "/" {
			path = "/" + name
		}

		err := tx.Model(&schema.MediaFolder{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": name, "path": path, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("failed to rename folder: %w", err)
		}

		err = tx.Model(&schema.MediaFolder{}).Where("path LIKE ?", folder.Path+"/%").
			Updates(map[string]interface{}{
				"path":       gorm.Expr("? || substr(path, ?)", path, len(folder.Path)+1),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to rewrite descendant paths: %w", err)
		}

		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteFolder removes a folder. With deleteContents the folder's files are
// removed and returned; otherwise they move to the root folder.
func (s *pgStore) DeleteFolder(ctx context.Context, id string, deleteContents bool) ([]schema.MediaFile, error) {
	if id == schema.RootFolderID {
		return nil, ErrRootFolderImmutable
	}

	var removed []schema.MediaFile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder schema.MediaFolder
		if err := tx.Where("id = ?", id).First(&folder).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFolderNotFound
			}
			return fmt.Errorf("failed to load folder: %w", err)
		}

		var files []schema.MediaFile
		if err := tx.Where("folder_id = ?", id).Find(&files).Error; err != nil {
			return fmt.Errorf("failed to load folder contents: %w", err)
		}

		if deleteContents {
			if len(files) > 0 {
				if err := tx.Where("folder_id = ?", id).Delete(&schema.MediaFile{}).Error; err != nil {
					return fmt.Errorf("failed to delete folder contents: %w", err)
				}
				removed = files
			}
		} else if len(files) > 0 {
			err := tx.Model(&schema.MediaFile{}).Where("folder_id = ?", id).
				Updates(map[string]interface{}{"folder_id": schema.RootFolderID, "updated_at": time.Now()}).Error
			if err != nil {
				return fmt.Errorf("failed to move folder contents: %w", err)
			}
			if err := adjustItemCount(tx, schema.RootFolderID, len(files)); err != nil {
				return err
			}
		}

		// Subfolders are re-parented to the root folder
		err := tx.Model(&schema.MediaFolder{}).Where("parent_id = ?", id).
			Updates(map[string]interface{}{"parent_id": nil, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("failed to re-parent subfolders: %w", err)
		}

		if err := tx.Where("id = ?", id).Delete(&schema.MediaFolder{}).Error; err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// adjustItemCount shifts a folder's cached count inside the caller's transaction
func adjustItemCount(tx *gorm.DB, folderID string, delta int) error {
	err := tx.Model(&schema.MediaFolder{}).Where("id = ?", folderID).
		Update("item_count", gorm.Expr("GREATEST(item_count + ?, 0)", delta)).Error
	if err != nil {
		return fmt.Errorf("failed to adjust item count for folder %s: %w", folderID, err)
	}
	return nil
}

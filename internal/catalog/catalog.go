// Package catalog holds the in-memory collection of media items and folders.
// It is the single source of truth for what the UI renders and the only
// component allowed to mutate canonical records; editors and the upload
// pipeline propose changes through its explicit operations.
package catalog

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/logger"
)

// Store is the asset catalog. All mutations are serialized on an internal
// mutex so independent operations never interleave partial writes (no torn
// updates to item fields or folder counts). Reads return copies.
type Store struct {
	mu sync.Mutex

	// items preserves insertion order for the view engine's stable tie-break
	items []domain.MediaItem
	index map[string]int

	folders map[string]domain.MediaFolder
}

// NewStore creates an empty catalog containing only the root folder
func NewStore() *Store {
	s := &Store{
		index:   make(map[string]int),
		folders: make(map[string]domain.MediaFolder),
	}
	s.folders[domain.RootFolderID] = domain.MediaFolder{
		ID:   domain.RootFolderID,
		Name: "Media Library",
		Path: "/",
	}
	return s
}

// List returns a snapshot of every item in catalog order
func (s *Store) List() []domain.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.MediaItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

// Get returns a copy of the item with the given id
func (s *Store) Get(id string) (domain.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.MediaItem{}, domain.ErrItemNotFound
	}
	return s.items[i].Clone(), nil
}

// Upsert replaces an existing record by id or appends a new one. It is the
// only write path for item records. Folder counts are adjusted in the same
// critical section.
func (s *Store) Upsert(item domain.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Folder == "" {
		item.Folder = domain.RootFolderID
	}
	item.Tags = domain.NormalizeTags(item.Tags)

	if i, ok := s.index[item.ID]; ok {
		prev := s.items[i]
		s.items[i] = item.Clone()
		if prev.Folder != item.Folder {
			s.adjustCount(prev.Folder, -1)
			s.adjustCount(item.Folder, +1)
		}
		return
	}

	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item.Clone())
	s.adjustCount(item.Folder, +1)
}

// Remove deletes the item with the given id and decrements its folder count.
// Removing a non-existent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// RemoveAll deletes every id in the set in one critical section
func (s *Store) RemoveAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.removeLocked(id)
	}
}

func (s *Store) removeLocked(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}

	folder := s.items[i].Folder
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	s.adjustCount(folder, -1)
}

// MoveToFolder updates the folder reference for every id in the set. Origin
// and destination counts change in the same logical step; there is no
// observable intermediate state where they disagree with the items.
func (s *Store) MoveToFolder(ids []string, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[folderID]; !ok {
		return domain.ErrFolderNotFound
	}

	for _, id := range ids {
		i, ok := s.index[id]
		if !ok {
			continue
		}
		prev := s.items[i].Folder
		if prev == folderID {
			continue
		}
		s.items[i].Folder = folderID
		s.adjustCount(prev, -1)
		s.adjustCount(folderID, +1)
	}
	return nil
}

// Folders returns a snapshot of all known folders
func (s *Store) Folders() []domain.MediaFolder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.MediaFolder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, f)
	}
	return out
}

// Folder returns the folder with the given id
func (s *Store) Folder(id string) (domain.MediaFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return domain.MediaFolder{}, domain.ErrFolderNotFound
	}
	return f, nil
}

// UpsertFolder adds or replaces a folder record, recomputing its cached count
// from the items currently present
func (s *Store) UpsertFolder(folder domain.MediaFolder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder.ItemCount = s.countItemsLocked(folder.ID)
	s.folders[folder.ID] = folder
}

// Replace swaps the entire catalog contents, e.g. after an initial load from
// the remote media service. Folder counts are rederived from the items.
func (s *Store) Replace(items []domain.MediaItem, folders []domain.MediaFolder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	s.index = make(map[string]int, len(items))
	s.folders = make(map[string]domain.MediaFolder, len(folders)+1)

	if _, ok := s.folders[domain.RootFolderID]; !ok {
		s.folders[domain.RootFolderID] = domain.MediaFolder{
			ID:   domain.RootFolderID,
			Name: "Media Library",
			Path: "/",
		}
	}
	for _, f := range folders {
		s.folders[f.ID] = f
	}

	for _, item := range items {
		if item.Folder == "" {
			item.Folder = domain.RootFolderID
		}
		if _, dup := s.index[item.ID]; dup {
			continue
		}
		item.Tags = domain.NormalizeTags(item.Tags)
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item.Clone())
	}

	s.recountLocked()
}

// adjustCount shifts a folder's cached count. An item referencing an unknown
// folder is a programming error; it is logged and excluded from derivations.
func (s *Store) adjustCount(folderID string, delta int) {
	f, ok := s.folders[folderID]
	if !ok {
		violation := &domain.InvariantViolation{Msg: "item references nonexistent folder " + folderID}
		logger.Error(violation, zap.String("folder", folderID))
		return
	}

	f.ItemCount += delta
	if f.ItemCount < 0 {
		f.ItemCount = 0
	}
	s.folders[folderID] = f
}

func (s *Store) countItemsLocked(folderID string) int {
	n := 0
	for _, item := range s.items {
		if item.Folder == folderID {
			n++
		}
	}
	return n
}

func (s *Store) recountLocked() {
	for id, f := range s.folders {
		f.ItemCount = s.countItemsLocked(id)
		s.folders[id] = f
	}
}

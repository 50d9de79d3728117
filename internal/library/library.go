// Package library is the host-facing facade. A host UI constructs one Library
// per picker surface from explicit Options and drives everything through it:
// folder navigation, filtering, selection, uploads, batch operations and the
// transform editors. Editors never mutate the catalog directly; their results
// flow back through the library's save path.
package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/batch"
	"github.com/dealerpress/media-library/internal/catalog"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/editor"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/selection"
	"github.com/dealerpress/media-library/internal/service"
	"github.com/dealerpress/media-library/internal/uploader"
	"github.com/dealerpress/media-library/internal/view"
)

var (
	// ErrNoClient is returned when Options carries no service client
	ErrNoClient = errors.New("a service client is required")

	// ErrStaleSession is returned when an editor result belongs to a session
	// that was cancelled or superseded; the result is discarded
	ErrStaleSession = errors.New("editing session is no longer active")

	// ErrNotVideo is returned when a trim session is requested for an item
	// without a duration
	ErrNotVideo = errors.New("item is not a video")
)

// Options configures a Library instance. There is no ambient or global
// configuration; everything the library needs arrives here.
type Options struct {
	// Client talks to the remote media service. Required.
	Client service.Client

	// HTTPClient fetches item bytes for editing. Defaults to the retrying
	// real client.
	HTTPClient adapter.HTTPClient

	// ImageCodec decodes and encodes rasters. Defaults to the stdlib codec.
	ImageCodec adapter.ImageCodec

	// Multiple enables multi-select mode
	Multiple bool

	// AllowedTypes restricts what the upload pipeline accepts; empty allows all
	AllowedTypes []domain.MediaType

	// MaxSize is the per-file upload ceiling in bytes; 0 disables the check
	MaxSize int64

	// Concurrency bounds parallel upload transfers
	Concurrency int

	// OnSelect is invoked with the chosen items when the host confirms a
	// selection
	OnSelect func(items []domain.MediaItem)
}

// Library wires the catalog, view engine, selection controller, upload
// pipeline and batch engine behind one facade
type Library struct {
	opts Options

	catalog   *catalog.Store
	selection *selection.Controller
	pipeline  *uploader.Pipeline
	batch     *batch.Engine

	mu      sync.Mutex
	filter  domain.FilterState
	session string
}

// New creates a Library from the given options
func New(opts Options) (*Library, error) {
	if opts.Client == nil {
		return nil, ErrNoClient
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = adapter.NewHTTPClient(30 * time.Second)
	}
	if opts.ImageCodec == nil {
		opts.ImageCodec = adapter.NewImageCodec()
	}

	cat := catalog.NewStore()
	sel := selection.NewController(opts.Multiple)

	return &Library{
		opts:      opts,
		catalog:   cat,
		selection: sel,
		pipeline: uploader.NewPipeline(opts.Client, cat, uploader.Options{
			MaxSize:      opts.MaxSize,
			AllowedTypes: opts.AllowedTypes,
			Concurrency:  opts.Concurrency,
		}),
		batch:  batch.NewEngine(opts.Client, cat, sel),
		filter: domain.DefaultFilterState(domain.RootFolderID),
	}, nil
}

// Close shuts down the upload pipeline
func (l *Library) Close() {
	l.pipeline.Close()
}

// LoadFolder fetches the folder's items and the folder tree from the media
// service and replaces the catalog contents. Navigation clears any selection
// and resets search; sort and type filters persist across folders.
func (l *Library) LoadFolder(ctx context.Context, folderID string) error {
	if folderID == "" {
		folderID = domain.RootFolderID
	}

	page, err := l.opts.Client.ListFiles(ctx, service.ListFilter{Folder: folderID})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	folders, err := l.opts.Client.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	l.catalog.Replace(page.Items, folders)
	l.selection.EnterFolder(folderID)

	l.mu.Lock()
	l.filter.CurrentFolder = folderID
	l.filter.SearchQuery = ""
	l.mu.Unlock()

	logger.InfoCtx(ctx, "folder loaded",
		zap.String("folder", folderID),
		zap.Int("items", len(page.Items)),
	)
	return nil
}

// Items returns the visible items: the catalog narrowed and ordered by the
// current filter state
func (l *Library) Items() []domain.MediaItem {
	l.mu.Lock()
	state := l.filter
	l.mu.Unlock()

	return view.Visible(l.catalog.List(), state)
}

// Folders returns the known folder tree
func (l *Library) Folders() []domain.MediaFolder {
	return l.catalog.Folders()
}

// FilterState returns a copy of the current filter state
func (l *Library) FilterState() domain.FilterState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.filter
}

// SetSearch sets the live search text
func (l *Library) SetSearch(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.filter.SearchQuery = query
}

// SetTypeFilter narrows the visible items to one media kind
func (l *Library) SetTypeFilter(t domain.MediaType) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.filter.TypeFilter = t
}

// SetSort sets the sort key and direction
func (l *Library) SetSort(key domain.SortKey, order domain.SortOrder) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.filter.SortBy = key
	l.filter.SortOrder = order
}

// Select toggles an item's membership in the selection
func (l *Library) Select(id string) {
	l.selection.Select(id)
}

// Selection returns the selection controller for direct inspection
func (l *Library) Selection() *selection.Controller {
	return l.selection
}

// ConfirmSelection hands the selected items to the OnSelect callback and
// resets the selection
func (l *Library) ConfirmSelection() error {
	ids := l.selection.Snapshot()
	if len(ids) == 0 {
		return domain.ErrEmptySelection
	}

	items := make([]domain.MediaItem, 0, len(ids))
	for _, id := range ids {
		item, err := l.catalog.Get(id)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	l.selection.Confirm()
	if l.opts.OnSelect != nil {
		l.opts.OnSelect(items)
	}
	return nil
}

// CancelSelection abandons the current selection
func (l *Library) CancelSelection() {
	l.selection.Cancel()
}

// Upload runs the given files through the upload pipeline into the current
// folder
func (l *Library) Upload(ctx context.Context, files []uploader.File) (*uploader.Batch, error) {
	l.mu.Lock()
	folder := l.filter.CurrentFolder
	l.mu.Unlock()

	return l.pipeline.Upload(ctx, files, folder)
}

// Batch returns the batch operations engine bound to the current selection
func (l *Library) Batch() *batch.Engine {
	return l.batch
}

// OpenCropEditor fetches the item's bytes and starts a crop session. Opening
// a session supersedes any previously active one.
func (l *Library) OpenCropEditor(ctx context.Context, itemID string, aspect float64) (*editor.CropEditor, error) {
	item, err := l.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}

	data, err := l.opts.HTTPClient.Do(ctx, http.MethodGet, item.URL, "", nil)
	if err != nil {
		return nil, &domain.TransferError{Op: "fetch source image", Err: err}
	}

	ed, err := editor.NewCropEditor(item.ID, item.Name, bytes.NewReader(data), l.opts.ImageCodec, aspect)
	if err != nil {
		return nil, err
	}

	l.setSession(ed.Session().ID)
	return ed, nil
}

// SaveCrop commits the crop session, uploads the resulting blob as a new
// catalog item in the source item's folder, and returns it. Results from
// cancelled or superseded sessions are discarded. The session is consumed
// only once the upload succeeds, so a transfer failure leaves the editor
// retryable with its crop state intact.
func (l *Library) SaveCrop(ctx context.Context, ed *editor.CropEditor) (*domain.MediaItem, error) {
	result, err := ed.Commit()
	if err != nil {
		return nil, err
	}
	if !l.sessionActive(result.Session.ID) {
		return nil, ErrStaleSession
	}

	source, err := l.catalog.Get(result.Session.ItemID)
	if err != nil {
		return nil, err
	}

	item, err := l.opts.Client.UploadFile(ctx, service.UploadInput{
		Name:        result.Filename,
		ContentType: result.Blob.ContentType,
		Data:        result.Blob.Data,
		Folder:      source.Folder,
		Alt:         source.Alt,
	})
	if err != nil {
		// Session stays active; the operator can retry the save
		return nil, err
	}
	if !l.takeSession(result.Session.ID) {
		return nil, ErrStaleSession
	}

	l.catalog.Upsert(*item)
	logger.InfoCtx(ctx, "crop saved",
		zap.String("source", source.ID),
		zap.String("item", item.ID),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height),
	)
	return item, nil
}

// OpenTrimEditor starts a trim session for a video item. Opening a session
// supersedes any previously active one.
func (l *Library) OpenTrimEditor(itemID string, grabber editor.FrameGrabber) (*editor.TrimEditor, error) {
	item, err := l.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}
	if item.Type != domain.MediaTypeVideo || item.Duration == nil {
		return nil, ErrNotVideo
	}

	ed, err := editor.NewTrimEditor(item.ID, *item.Duration, grabber, l.opts.ImageCodec)
	if err != nil {
		return nil, err
	}

	l.setSession(ed.Session().ID)
	return ed, nil
}

// SaveTrim commits the trim session. The trim instructions are returned to
// the caller for the external transcoder; a captured thumbnail is uploaded
// and recorded on the item. Results from cancelled or superseded sessions are
// discarded. The session is consumed only once the thumbnail upload succeeds,
// so a transfer failure leaves the editor retryable with its bounds intact.
func (l *Library) SaveTrim(ctx context.Context, ed *editor.TrimEditor) (*editor.TrimResult, error) {
	result, err := ed.Commit()
	if err != nil {
		return nil, err
	}
	if !l.sessionActive(result.Session.ID) {
		return nil, ErrStaleSession
	}

	item, err := l.catalog.Get(result.Session.ItemID)
	if err != nil {
		return nil, err
	}

	var thumb *domain.MediaItem
	if result.Thumbnail != nil {
		thumb, err = l.opts.Client.UploadFile(ctx, service.UploadInput{
			Name:        item.Name + "-thumbnail.jpg",
			ContentType: result.Thumbnail.ContentType,
			Data:        result.Thumbnail.Data,
			Folder:      item.Folder,
		})
		if err != nil {
			// Session stays active; the operator can retry the save
			return nil, err
		}
	}
	if !l.takeSession(result.Session.ID) {
		return nil, ErrStaleSession
	}
	ed.Close()

	if thumb != nil {
		item.ThumbnailURL = thumb.URL
		l.catalog.Upsert(item)
	}

	logger.InfoCtx(ctx, "trim saved",
		zap.String("item", item.ID),
		zap.Float64("start", result.Start),
		zap.Float64("end", result.End),
	)
	return result, nil
}

// CancelEdit abandons an editing session; a later Save for it is discarded
func (l *Library) CancelEdit(session editor.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session == session.ID {
		l.session = ""
	}
}

func (l *Library) setSession(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.session = id
}

// sessionActive reports whether id is still the active session without
// consuming it
func (l *Library) sessionActive(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.session == id
}

// takeSession consumes the active session if it matches
func (l *Library) takeSession(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session != id {
		return false
	}
	l.session = ""
	return true
}

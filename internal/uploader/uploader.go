// Package uploader implements the progress-tracked upload pipeline. Files are
// validated before any byte transfer begins, transferred through the remote
// media service on a bounded worker pool, and materialized into the catalog
// only after every progress event for the batch has been delivered.
package uploader

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/catalog"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/service"
)

// ErrNoFiles is returned when Upload is called with an empty file list
var ErrNoFiles = errors.New("no files to upload")

// defaultConcurrency bounds parallel transfers per pipeline
const defaultConcurrency = 4

// File is one local file picked for upload
type File struct {
	Name string
	// ContentType is the declared media kind; the pipeline sniffs the actual
	// kind from the bytes and prefers it
	ContentType string
	Data        []byte
}

// FileFailure names a file that could not be uploaded and why
type FileFailure struct {
	Name string
	Err  error
}

// Result enumerates the outcome of a batch: the materialized items and the
// per-file failures. One file failing never blocks the others.
type Result struct {
	Items    []domain.MediaItem
	Failures []FileFailure
}

// Batch is a handle on one in-flight upload batch
type Batch struct {
	ID       string
	Folder   string
	Progress *Progress

	result *Result
}

// Result returns the batch outcome once the batch is done, nil before that
func (b *Batch) Result() *Result {
	select {
	case <-b.Progress.Done():
		return b.result
	default:
		return nil
	}
}

// Wait blocks until the batch reaches a terminal state or ctx is cancelled
func (b *Batch) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.Progress.Done():
	}

	if err := b.Progress.Err(); err != nil {
		return nil, err
	}
	return b.result, nil
}

// Options configures a pipeline. All configuration is passed in explicitly.
type Options struct {
	// MaxSize is the per-file byte ceiling; 0 disables the check
	MaxSize int64
	// AllowedTypes restricts accepted kinds; empty allows all
	AllowedTypes []domain.MediaType
	// Concurrency bounds parallel transfers
	Concurrency int
}

// Pipeline uploads batches of files through the remote media service
type Pipeline struct {
	client  service.Client
	catalog *catalog.Store
	opts    Options
	pool    pond.ResultPool[*domain.MediaItem]
}

// NewPipeline creates an upload pipeline writing materialized items into cat
func NewPipeline(client service.Client, cat *catalog.Store, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &Pipeline{
		client:  client,
		catalog: cat,
		opts:    opts,
		pool:    pond.NewResultPool[*domain.MediaItem](opts.Concurrency),
	}
}

// Close shuts down the worker pool
func (p *Pipeline) Close() {
	_ = p.pool.Stop()
}

// Upload validates and transfers the given files into targetFolder. It
// returns immediately with a batch handle; progress is observable through
// batch.Progress and the outcome through batch.Wait or batch.Result.
func (p *Pipeline) Upload(ctx context.Context, files []File, targetFolder string) (*Batch, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if targetFolder == "" {
		targetFolder = domain.RootFolderID
	}

	batch := &Batch{
		ID:       ulid.Make().String(),
		Folder:   targetFolder,
		Progress: newProgress(),
		result:   &Result{},
	}

	// Reject-early policy: every file is validated before any byte transfer
	// begins. A validation failure is recorded per file and never blocks the
	// rest of the batch.
	valid := make([]File, 0, len(files))
	for _, f := range files {
		if err := p.validate(f); err != nil {
			logger.WarnCtx(ctx, "file rejected before transfer",
				zap.String("batch", batch.ID),
				zap.String("file", f.Name),
				zap.Error(err),
			)
			batch.result.Failures = append(batch.result.Failures, FileFailure{Name: f.Name, Err: err})
			continue
		}
		valid = append(valid, f)
	}

	if len(valid) == 0 {
		batch.Progress.setPercent(0)
		batch.Progress.complete()
		return batch, nil
	}

	tasks := make([]pond.Result[*domain.MediaItem], len(valid))
	for i, f := range valid {
		file := f
		tasks[i] = p.pool.SubmitErr(func() (*domain.MediaItem, error) {
			return p.transfer(ctx, file, targetFolder)
		})
	}

	batch.Progress.setPercent(0)

	go p.collect(ctx, batch, valid, tasks)

	return batch, nil
}

// collect drains the per-file tasks, emitting batch progress in non-decreasing
// order and materializing items into the catalog only after the final
// progress event
func (p *Pipeline) collect(ctx context.Context, batch *Batch, files []File, tasks []pond.Result[*domain.MediaItem]) {
	items := make([]domain.MediaItem, 0, len(tasks))

	for i, task := range tasks {
		item, err := task.Wait()
		if err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("batch", batch.ID),
				zap.String("file", files[i].Name),
			)
			batch.result.Failures = append(batch.result.Failures, FileFailure{Name: files[i].Name, Err: err})
		} else {
			items = append(items, *item)
		}
		batch.Progress.setPercent((i + 1) * 100 / len(tasks))
	}

	// A cancelled batch never materializes anything
	if err := ctx.Err(); err != nil {
		logger.WarnCtx(ctx, "upload batch cancelled",
			zap.String("batch", batch.ID),
			zap.Error(err),
		)
		batch.Progress.fail(err)
		return
	}

	// Materialize after all progress events for the batch
	for _, item := range items {
		p.catalog.Upsert(item)
	}
	batch.result.Items = items

	logger.InfoCtx(ctx, "upload batch finished",
		zap.String("batch", batch.ID),
		zap.String("folder", batch.Folder),
		zap.Int("succeeded", len(items)),
		zap.Int("failed", len(batch.result.Failures)),
	)
	batch.Progress.complete()
}

// transfer uploads one file through the service client
func (p *Pipeline) transfer(ctx context.Context, f File, targetFolder string) (*domain.MediaItem, error) {
	item, err := p.client.UploadFile(ctx, service.UploadInput{
		Name:        f.Name,
		ContentType: p.sniff(f),
		Data:        f.Data,
		Folder:      targetFolder,
	})
	if err != nil {
		return nil, err
	}

	// Video items require an explicit thumbnail-capture step later; only the
	// absence is logged here.
	if item.Type == domain.MediaTypeVideo && item.ThumbnailURL == "" {
		logger.DebugCtx(ctx, "video uploaded without thumbnail, capture required",
			zap.String("item", item.ID),
		)
	}
	return item, nil
}

// validate enforces the size ceiling and allowed kinds before any transfer
func (p *Pipeline) validate(f File) error {
	if len(f.Data) == 0 {
		return &domain.ValidationError{FileName: f.Name, Reason: "file is empty"}
	}
	if p.opts.MaxSize > 0 && int64(len(f.Data)) > p.opts.MaxSize {
		return &domain.ValidationError{
			FileName: f.Name,
			Reason:   fmt.Sprintf("size %d exceeds limit %d", len(f.Data), p.opts.MaxSize),
		}
	}

	if len(p.opts.AllowedTypes) > 0 {
		kind := domain.DetectType(p.sniff(f))
		allowed := false
		for _, t := range p.opts.AllowedTypes {
			if t == kind || t == domain.MediaTypeAll {
				allowed = true
				break
			}
		}
		if !allowed {
			return &domain.ValidationError{
				FileName: f.Name,
				Reason:   fmt.Sprintf("kind %q is not accepted", kind),
			}
		}
	}
	return nil
}

// sniff determines the actual media kind from the bytes, falling back to the
// declared content type
func (p *Pipeline) sniff(f File) string {
	detected := mimetype.Detect(f.Data)
	if detected != nil && detected.String() != "application/octet-stream" {
		return detected.String()
	}
	if f.ContentType != "" {
		return f.ContentType
	}
	return "application/octet-stream"
}

// Package batch applies bulk operations to the current selection. Every
// operation is remote-first: the media service is updated before the catalog,
// so the catalog never shows a state the service would contradict. Failures
// are collected per item; one item failing never aborts the rest.
package batch

import (
	"context"

	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/catalog"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/selection"
	"github.com/dealerpress/media-library/internal/service"
)

// ItemError names an item an operation could not be applied to and why
type ItemError struct {
	ID  string
	Err error
}

// Result is the per-item outcome of a batch operation
type Result struct {
	Succeeded []string
	Failed    []ItemError
}

// OK reports whether every item succeeded
func (r *Result) OK() bool {
	return len(r.Failed) == 0
}

// Engine runs batch operations against the selected items
type Engine struct {
	client    service.Client
	catalog   *catalog.Store
	selection *selection.Controller
}

// NewEngine creates a batch engine over the given collaborators
func NewEngine(client service.Client, cat *catalog.Store, sel *selection.Controller) *Engine {
	return &Engine{
		client:    client,
		catalog:   cat,
		selection: sel,
	}
}

// ApplyTags adds the given tags to every selected item. Tag application is a
// set union with each item's existing tags, so repeating the operation is
// idempotent. The selection is confirmed (cleared) afterwards.
func (e *Engine) ApplyTags(ctx context.Context, tags []string) (*Result, error) {
	ids := e.selection.Snapshot()
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	defer e.selection.Confirm()

	tags = domain.NormalizeTags(tags)
	result := &Result{}

	for _, id := range ids {
		item, err := e.catalog.Get(id)
		if err != nil {
			result.Failed = append(result.Failed, ItemError{ID: id, Err: err})
			continue
		}

		merged := domain.NormalizeTags(append(item.Tags, tags...))
		updated, err := e.client.UpdateFile(ctx, id, service.FileUpdate{Tags: merged})
		if err != nil {
			result.Failed = append(result.Failed, ItemError{ID: id, Err: err})
			continue
		}

		e.catalog.Upsert(*updated)
		result.Succeeded = append(result.Succeeded, id)
	}

	e.log(ctx, "tags applied", result, zap.Strings("tags", tags))
	return result, nil
}

// AssignFolder moves every selected item into the target folder. The move is
// attempted as one bulk request; if that fails, each item is retried
// individually so the failure report stays per item. The selection is
// confirmed afterwards.
func (e *Engine) AssignFolder(ctx context.Context, folderID string) (*Result, error) {
	ids := e.selection.Snapshot()
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if _, err := e.catalog.Folder(folderID); err != nil {
		return nil, err
	}
	defer e.selection.Confirm()

	result := &Result{}

	if err := e.client.MoveFilesToFolder(ctx, ids, folderID); err != nil {
		logger.WarnCtx(ctx, "bulk move failed, retrying per item",
			zap.String("folder", folderID),
			zap.Error(err),
		)
		for _, id := range ids {
			if err := e.client.MoveFilesToFolder(ctx, []string{id}, folderID); err != nil {
				result.Failed = append(result.Failed, ItemError{ID: id, Err: err})
				continue
			}
			result.Succeeded = append(result.Succeeded, id)
		}
	} else {
		result.Succeeded = append(result.Succeeded, ids...)
	}

	if len(result.Succeeded) > 0 {
		if err := e.catalog.MoveToFolder(result.Succeeded, folderID); err != nil {
			return nil, err
		}
	}

	e.log(ctx, "items moved", result, zap.String("folder", folderID))
	return result, nil
}

// DeleteSelected removes every selected item, remotely then locally. The
// selection is confirmed afterwards.
func (e *Engine) DeleteSelected(ctx context.Context) (*Result, error) {
	ids := e.selection.Snapshot()
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	defer e.selection.Confirm()

	result := &Result{}

	for _, id := range ids {
		if err := e.client.DeleteFile(ctx, id); err != nil {
			result.Failed = append(result.Failed, ItemError{ID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	if len(result.Succeeded) > 0 {
		e.catalog.RemoveAll(result.Succeeded)
	}

	e.log(ctx, "items deleted", result)
	return result, nil
}

func (e *Engine) log(ctx context.Context, msg string, result *Result, fields ...zap.Field) {
	fields = append(fields,
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	if result.OK() {
		logger.InfoCtx(ctx, msg, fields...)
		return
	}
	for _, f := range result.Failed {
		fields = append(fields, zap.NamedError("item_"+f.ID, f.Err))
	}
	logger.WarnCtx(ctx, msg+" with failures", fields...)
}

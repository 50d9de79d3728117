package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
)

// restClient talks to the reference media service's REST API
type restClient struct {
	baseURL    string
	httpClient adapter.HTTPClient
}

// NewRESTClient creates a client for the media service at baseURL
func NewRESTClient(baseURL string, httpClient adapter.HTTPClient) Client {
	return &restClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *restClient) endpoint(path string) string {
	return c.baseURL + "/api/v1" + path
}

// ListFiles returns a paginated, filtered file listing
func (c *restClient) ListFiles(ctx context.Context, filter ListFilter) (*Page, error) {
	q := url.Values{}
	if filter.Folder != "" {
		q.Set("folder", filter.Folder)
	}
	if filter.Type != "" && filter.Type != domain.MediaTypeAll {
		q.Set("type", string(filter.Type))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.SortBy != "" {
		q.Set("sort_by", string(filter.SortBy))
	}
	if filter.SortOrder != "" {
		q.Set("sort_order", string(filter.SortOrder))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	endpoint := c.endpoint("/files")
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var page Page
	if err := c.httpClient.GetJSON(ctx, endpoint, &page); err != nil {
		return nil, &domain.TransferError{Op: "list files", Err: err}
	}
	return &page, nil
}

// UploadFile transfers one file as a multipart request
func (c *restClient) UploadFile(ctx context.Context, input UploadInput) (*domain.MediaItem, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(input.Data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if input.Folder != "" {
		if err := writer.WriteField("folder", input.Folder); err != nil {
			return nil, fmt.Errorf("failed to write folder field: %w", err)
		}
	}
	if input.Alt != "" {
		if err := writer.WriteField("alt", input.Alt); err != nil {
			return nil, fmt.Errorf("failed to write alt field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	respBody, err := c.httpClient.Do(ctx, http.MethodPost, c.endpoint("/files"), writer.FormDataContentType(), &body)
	if err != nil {
		return nil, &domain.TransferError{Op: "upload file", Err: err}
	}

	var item domain.MediaItem
	if err := json.Unmarshal(respBody, &item); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &item, nil
}

// UploadFiles transfers several files sequentially, stopping at the first failure
func (c *restClient) UploadFiles(ctx context.Context, inputs []UploadInput) ([]domain.MediaItem, error) {
	items := make([]domain.MediaItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := c.UploadFile(ctx, input)
		if err != nil {
			return items, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// UpdateFile applies a partial metadata update
func (c *restClient) UpdateFile(ctx context.Context, id string, update FileUpdate) (*domain.MediaItem, error) {
	payload := map[string]interface{}{}
	if update.Name != nil {
		payload["name"] = *update.Name
	}
	if update.Alt != nil {
		payload["alt"] = *update.Alt
	}
	if update.Folder != nil {
		payload["folder"] = *update.Folder
	}
	if update.Tags != nil {
		payload["tags"] = update.Tags
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	respBody, err := c.httpClient.Do(ctx, http.MethodPatch, c.endpoint("/files/"+url.PathEscape(id)), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransferError{Op: "update file", Err: err}
	}

	var item domain.MediaItem
	if err := json.Unmarshal(respBody, &item); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	return &item, nil
}

// DeleteFile removes one file
func (c *restClient) DeleteFile(ctx context.Context, id string) error {
	if _, err := c.httpClient.Do(ctx, http.MethodDelete, c.endpoint("/files/"+url.PathEscape(id)), "", nil); err != nil {
		return &domain.TransferError{Op: "delete file", Err: err}
	}
	return nil
}

// DeleteFiles removes several files in one request
func (c *restClient) DeleteFiles(ctx context.Context, ids []string) error {
	body, err := json.Marshal(map[string][]string{"ids": ids})
	if err != nil {
		return fmt.Errorf("failed to marshal ids: %w", err)
	}

	if _, err := c.httpClient.Do(ctx, http.MethodPost, c.endpoint("/files/delete"), "application/json", bytes.NewReader(body)); err != nil {
		return &domain.TransferError{Op: "delete files", Err: err}
	}
	return nil
}

// ListFolders returns all folders
func (c *restClient) ListFolders(ctx context.Context) ([]domain.MediaFolder, error) {
	var folders []domain.MediaFolder
	if err := c.httpClient.GetJSON(ctx, c.endpoint("/folders"), &folders); err != nil {
		return nil, &domain.TransferError{Op: "list folders", Err: err}
	}
	return folders, nil
}

// CreateFolder creates a folder, optionally nested under a parent
func (c *restClient) CreateFolder(ctx context.Context, name string, parentID *string) (*domain.MediaFolder, error) {
	payload := map[string]interface{}{"name": name}
	if parentID != nil {
		payload["parent_folder"] = *parentID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal folder: %w", err)
	}

	respBody, err := c.httpClient.Do(ctx, http.MethodPost, c.endpoint("/folders"), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransferError{Op: "create folder", Err: err}
	}

	var folder domain.MediaFolder
	if err := json.Unmarshal(respBody, &folder); err != nil {
		return nil, fmt.Errorf("failed to decode folder response: %w", err)
	}
	return &folder, nil
}

// UpdateFolder renames a folder
func (c *restClient) UpdateFolder(ctx context.Context, id, name string) (*domain.MediaFolder, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal folder update: %w", err)
	}

	respBody, err := c.httpClient.Do(ctx, http.MethodPatch, c.endpoint("/folders/"+url.PathEscape(id)), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransferError{Op: "update folder", Err: err}
	}

	var folder domain.MediaFolder
	if err := json.Unmarshal(respBody, &folder); err != nil {
		return nil, fmt.Errorf("failed to decode folder response: %w", err)
	}
	return &folder, nil
}

// DeleteFolder removes a folder
func (c *restClient) DeleteFolder(ctx context.Context, id string, deleteContents bool) error {
	endpoint := c.endpoint("/folders/" + url.PathEscape(id))
	if deleteContents {
		endpoint += "?delete_contents=true"
	}

	if _, err := c.httpClient.Do(ctx, http.MethodDelete, endpoint, "", nil); err != nil {
		return &domain.TransferError{Op: "delete folder", Err: err}
	}
	return nil
}

// MoveFilesToFolder reassigns files to a target folder
func (c *restClient) MoveFilesToFolder(ctx context.Context, ids []string, targetFolderID string) error {
	body, err := json.Marshal(map[string]interface{}{
		"ids":    ids,
		"folder": targetFolderID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal move request: %w", err)
	}

	if _, err := c.httpClient.Do(ctx, http.MethodPost, c.endpoint("/files/move"), "application/json", bytes.NewReader(body)); err != nil {
		return &domain.TransferError{Op: "move files", Err: err}
	}
	return nil
}

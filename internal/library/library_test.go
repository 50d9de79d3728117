package library_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/library"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/mocks"
	"github.com/dealerpress/media-library/internal/service"
	"github.com/dealerpress/media-library/internal/uploader"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type libraryTest struct {
	ctrl   *gomock.Controller
	client *mocks.MockServiceClient
	http   *mocks.MockHTTPClient
	lib    *library.Library
}

func newLibraryTest(t *testing.T, opts library.Options) *libraryTest {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := mocks.NewMockServiceClient(ctrl)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	opts.Client = client
	opts.HTTPClient = httpClient
	opts.ImageCodec = adapter.NewImageCodec()

	lib, err := library.New(opts)
	require.NoError(t, err)
	t.Cleanup(lib.Close)

	return &libraryTest{ctrl: ctrl, client: client, http: httpClient, lib: lib}
}

func (lt *libraryTest) expectLoad(folderID string, items []domain.MediaItem, folders []domain.MediaFolder) {
	lt.client.EXPECT().ListFiles(gomock.Any(), service.ListFilter{Folder: folderID}).
		Return(&service.Page{Items: items, Total: int64(len(items))}, nil)
	lt.client.EXPECT().ListFolders(gomock.Any()).Return(folders, nil)
}

func pngBlob(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := library.New(library.Options{})
	assert.ErrorIs(t, err, library.ErrNoClient)
}

func TestLoadFolder_PopulatesCatalogAndResetsSearch(t *testing.T) {
	lt := newLibraryTest(t, library.Options{Multiple: true})

	now := time.Now()
	lt.expectLoad("inventory",
		[]domain.MediaItem{
			{ID: "a", Name: "front.jpg", Type: domain.MediaTypeImage, Folder: "inventory", CreatedAt: now},
			{ID: "b", Name: "rear.jpg", Type: domain.MediaTypeImage, Folder: "inventory", CreatedAt: now.Add(time.Minute)},
		},
		[]domain.MediaFolder{{ID: "inventory", Name: "inventory", Path: "/inventory"}},
	)

	lt.lib.SetSearch("leftover query")
	require.NoError(t, lt.lib.LoadFolder(context.Background(), "inventory"))

	state := lt.lib.FilterState()
	assert.Equal(t, "inventory", state.CurrentFolder)
	assert.Empty(t, state.SearchQuery)

	items := lt.lib.Items()
	require.Len(t, items, 2)
	// Default sort: newest first
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestLoadFolder_EmptyIDMeansRoot(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})
	lt.expectLoad(domain.RootFolderID, nil, nil)

	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))
	assert.Equal(t, domain.RootFolderID, lt.lib.FilterState().CurrentFolder)
}

func TestItems_RespectsLiveFilter(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "a", Name: "walkaround.mp4", Type: domain.MediaTypeVideo},
		{ID: "b", Name: "front.jpg", Type: domain.MediaTypeImage},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	lt.lib.SetTypeFilter(domain.MediaTypeVideo)
	items := lt.lib.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	lt.lib.SetTypeFilter(domain.MediaTypeAll)
	lt.lib.SetSearch("front")
	items = lt.lib.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestConfirmSelection_InvokesCallback(t *testing.T) {
	var chosen []domain.MediaItem
	lt := newLibraryTest(t, library.Options{
		Multiple: true,
		OnSelect: func(items []domain.MediaItem) { chosen = items },
	})

	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "a", Name: "front.jpg", Type: domain.MediaTypeImage},
		{ID: "b", Name: "rear.jpg", Type: domain.MediaTypeImage},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	lt.lib.Select("a")
	lt.lib.Select("b")

	require.NoError(t, lt.lib.ConfirmSelection())

	require.Len(t, chosen, 2)
	assert.Equal(t, "a", chosen[0].ID)
	assert.Equal(t, "b", chosen[1].ID)
	assert.Empty(t, lt.lib.Selection().Snapshot())
}

func TestConfirmSelection_EmptyIsAnError(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	err := lt.lib.ConfirmSelection()
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestSaveCrop_UploadsNewItemIntoSourceFolder(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	lt.expectLoad("inventory", []domain.MediaItem{
		{ID: "a", Name: "front.jpg", Type: domain.MediaTypeImage, Folder: "inventory", URL: "http://cdn/front.jpg", Alt: "front view"},
	}, []domain.MediaFolder{{ID: "inventory", Name: "inventory", Path: "/inventory"}})
	require.NoError(t, lt.lib.LoadFolder(context.Background(), "inventory"))

	lt.http.EXPECT().Do(gomock.Any(), http.MethodGet, "http://cdn/front.jpg", "", nil).
		Return(pngBlob(t, 100, 100), nil)

	ed, err := lt.lib.OpenCropEditor(context.Background(), "a", 1.0)
	require.NoError(t, err)

	lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input service.UploadInput) (*domain.MediaItem, error) {
			assert.Equal(t, "front-cropped.png", input.Name)
			assert.Equal(t, "inventory", input.Folder)
			assert.Equal(t, "front view", input.Alt)
			return &domain.MediaItem{ID: "crop-1", Name: input.Name, Type: domain.MediaTypeImage, Folder: input.Folder}, nil
		})

	item, err := lt.lib.SaveCrop(context.Background(), ed)
	require.NoError(t, err)
	assert.Equal(t, "crop-1", item.ID)

	// The new item landed in the catalog
	items := lt.lib.Items()
	assert.Len(t, items, 2)
}

func TestSaveCrop_StaleSessionIsDiscarded(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "a", Name: "front.jpg", Type: domain.MediaTypeImage, URL: "http://cdn/front.jpg"},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	lt.http.EXPECT().Do(gomock.Any(), http.MethodGet, "http://cdn/front.jpg", "", nil).
		Return(pngBlob(t, 50, 50), nil).Times(2)

	first, err := lt.lib.OpenCropEditor(context.Background(), "a", 1.0)
	require.NoError(t, err)

	// Opening a second editor supersedes the first session
	second, err := lt.lib.OpenCropEditor(context.Background(), "a", 1.0)
	require.NoError(t, err)

	_, err = lt.lib.SaveCrop(context.Background(), first)
	assert.ErrorIs(t, err, library.ErrStaleSession)

	// Cancelling the live session discards its save as well
	lt.lib.CancelEdit(second.Session())
	_, err = lt.lib.SaveCrop(context.Background(), second)
	assert.ErrorIs(t, err, library.ErrStaleSession)

	// Nothing was uploaded, nothing materialized
	assert.Len(t, lt.lib.Items(), 1)
}

func TestSaveCrop_RetriesAfterTransferFailure(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "a", Name: "front.jpg", Type: domain.MediaTypeImage, URL: "http://cdn/front.jpg"},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	lt.http.EXPECT().Do(gomock.Any(), http.MethodGet, "http://cdn/front.jpg", "", nil).
		Return(pngBlob(t, 50, 50), nil)

	ed, err := lt.lib.OpenCropEditor(context.Background(), "a", 1.0)
	require.NoError(t, err)

	transferErr := &domain.TransferError{Op: "upload file", Err: errors.New("service unavailable")}
	gomock.InOrder(
		lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).Return(nil, transferErr),
		lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).
			Return(&domain.MediaItem{ID: "crop-1", Name: "front-cropped.png", Type: domain.MediaTypeImage}, nil),
	)

	// A failed transfer keeps the session alive with its crop state intact
	_, err = lt.lib.SaveCrop(context.Background(), ed)
	require.ErrorIs(t, err, transferErr)

	item, err := lt.lib.SaveCrop(context.Background(), ed)
	require.NoError(t, err)
	assert.Equal(t, "crop-1", item.ID)

	// Success consumed the session; a third save is stale
	_, err = lt.lib.SaveCrop(context.Background(), ed)
	assert.ErrorIs(t, err, library.ErrStaleSession)
}

func TestOpenTrimEditor_RejectsNonVideo(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	duration := 30.0
	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "img", Name: "front.jpg", Type: domain.MediaTypeImage},
		{ID: "vid", Name: "walkaround.mp4", Type: domain.MediaTypeVideo, Duration: &duration},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	_, err := lt.lib.OpenTrimEditor("img", nil)
	assert.ErrorIs(t, err, library.ErrNotVideo)

	ed, err := lt.lib.OpenTrimEditor("vid", nil)
	require.NoError(t, err)
	assert.Equal(t, 30.0, ed.Duration())
}

func TestSaveTrim_UploadsThumbnailAndRecordsURL(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	duration := 20.0
	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "vid", Name: "walkaround", Type: domain.MediaTypeVideo, Duration: &duration},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	grabber := mocks.NewMockFrameGrabber(lt.ctrl)
	grabber.EXPECT().Frame(gomock.Any(), gomock.Any()).
		Return(image.NewRGBA(image.Rect(0, 0, 32, 32)), nil)

	ed, err := lt.lib.OpenTrimEditor("vid", grabber)
	require.NoError(t, err)
	require.NoError(t, ed.SetStart(2))
	require.NoError(t, ed.SetEnd(10))
	require.NoError(t, ed.CaptureThumbnail(context.Background()))

	lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input service.UploadInput) (*domain.MediaItem, error) {
			assert.Equal(t, "walkaround-thumbnail.jpg", input.Name)
			assert.Equal(t, "image/jpeg", input.ContentType)
			return &domain.MediaItem{ID: "thumb-1", URL: "http://cdn/thumb-1.jpg"}, nil
		})

	result, err := lt.lib.SaveTrim(context.Background(), ed)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.Start)
	assert.Equal(t, 10.0, result.End)

	items := lt.lib.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "http://cdn/thumb-1.jpg", items[0].ThumbnailURL)
}

func TestSaveTrim_RetriesAfterThumbnailUploadFailure(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	duration := 20.0
	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "vid", Name: "walkaround", Type: domain.MediaTypeVideo, Duration: &duration},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	grabber := mocks.NewMockFrameGrabber(lt.ctrl)
	grabber.EXPECT().Frame(gomock.Any(), gomock.Any()).
		Return(image.NewRGBA(image.Rect(0, 0, 32, 32)), nil)

	ed, err := lt.lib.OpenTrimEditor("vid", grabber)
	require.NoError(t, err)
	require.NoError(t, ed.SetStart(3))
	require.NoError(t, ed.SetEnd(12))
	require.NoError(t, ed.CaptureThumbnail(context.Background()))

	transferErr := &domain.TransferError{Op: "upload file", Err: errors.New("service unavailable")}
	gomock.InOrder(
		lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).Return(nil, transferErr),
		lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).
			Return(&domain.MediaItem{ID: "thumb-1", URL: "http://cdn/thumb-1.jpg"}, nil),
	)

	// A failed thumbnail upload keeps the session alive with its bounds intact
	_, err = lt.lib.SaveTrim(context.Background(), ed)
	require.ErrorIs(t, err, transferErr)

	result, err := lt.lib.SaveTrim(context.Background(), ed)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Start)
	assert.Equal(t, 12.0, result.End)

	items := lt.lib.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "http://cdn/thumb-1.jpg", items[0].ThumbnailURL)
}

func TestSaveTrim_WithoutThumbnailSkipsUpload(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	duration := 20.0
	lt.expectLoad(domain.RootFolderID, []domain.MediaItem{
		{ID: "vid", Name: "walkaround", Type: domain.MediaTypeVideo, Duration: &duration},
	}, nil)
	require.NoError(t, lt.lib.LoadFolder(context.Background(), ""))

	ed, err := lt.lib.OpenTrimEditor("vid", nil)
	require.NoError(t, err)
	require.NoError(t, ed.SetEnd(15))

	result, err := lt.lib.SaveTrim(context.Background(), ed)
	require.NoError(t, err)
	assert.Nil(t, result.Thumbnail)
}

func TestUpload_GoesIntoCurrentFolder(t *testing.T) {
	lt := newLibraryTest(t, library.Options{})

	lt.expectLoad("inventory", nil, []domain.MediaFolder{{ID: "inventory", Name: "inventory", Path: "/inventory"}})
	require.NoError(t, lt.lib.LoadFolder(context.Background(), "inventory"))

	lt.client.EXPECT().UploadFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input service.UploadInput) (*domain.MediaItem, error) {
			assert.Equal(t, "inventory", input.Folder)
			return &domain.MediaItem{ID: "new", Name: input.Name, Folder: input.Folder}, nil
		})

	batch, err := lt.lib.Upload(context.Background(), []uploader.File{
		{Name: "front.png", Data: pngBlob(t, 4, 4)},
	})
	require.NoError(t, err)

	_, err = batch.Wait(context.Background())
	require.NoError(t, err)

	items := lt.lib.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)
}

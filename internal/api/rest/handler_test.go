package rest_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/dealerpress/media-library/internal/adapter"
	"github.com/dealerpress/media-library/internal/api/middleware"
	"github.com/dealerpress/media-library/internal/api/rest"
	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/mocks"
	"github.com/dealerpress/media-library/internal/store"
	"github.com/dealerpress/media-library/internal/store/schema"
	"github.com/dealerpress/media-library/internal/thumbnail"
)

const testAPIKey = "test-api-key"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type handlerTest struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	blobs     *mocks.MockStorage
	publisher *mocks.MockPublisher
	router    *gin.Engine
}

func newHandlerTest(t *testing.T) *handlerTest {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockStorage(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)

	thumbs := thumbnail.NewGenerator(adapter.NewImageCodec(), 64, 1)
	t.Cleanup(thumbs.Close)

	router := gin.New()
	handler := rest.NewHandler(st, blobs, publisher, thumbs, 1<<20)
	rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &handlerTest{ctrl: ctrl, store: st, blobs: blobs, publisher: publisher, router: router}
}

func (ht *handlerTest) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ht.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ht := newHandlerTest(t)

	rec := ht.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListFiles_QueryParsing(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().ListFiles(gomock.Any(), store.FileQuery{
		FolderID:  "inventory",
		Kind:      schema.MediaKindImage,
		Search:    "front",
		SortBy:    "name",
		SortOrder: "asc",
		Page:      2,
		Limit:     10,
	}).Return([]schema.MediaFile{
		{ID: "a", Name: "front.jpg", Kind: schema.MediaKindImage, StoragePath: "a.jpg"},
	}, int64(11), nil)
	ht.blobs.EXPECT().URL("a.jpg").Return("http://cdn/a.jpg")

	rec := ht.do(httptest.NewRequest(http.MethodGet,
		"/api/v1/files?folder=inventory&type=image&search=front&sort_by=name&sort_order=asc&page=2&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(11), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "http://cdn/a.jpg", page.Items[0].URL)
}

func TestListFiles_TypeAllIsIgnored(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().ListFiles(gomock.Any(), store.FileQuery{Page: 1}).
		Return(nil, int64(0), nil)

	rec := ht.do(httptest.NewRequest(http.MethodGet, "/api/v1/files?type=all", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetFile_NotFound(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().GetFile(gomock.Any(), "ghost").Return(nil, nil)

	rec := ht.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func multipartUpload(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadFile_ImageGetsThumbnailAndDimensions(t *testing.T) {
	ht := newHandlerTest(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))

	var storagePath string
	ht.blobs.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(path string, _ []byte) error {
			storagePath = path
			return nil
		})
	ht.blobs.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(path string, _ []byte) error {
			assert.True(t, strings.HasSuffix(path, "-thumb.jpg"))
			return nil
		})

	var created *schema.MediaFile
	ht.store.EXPECT().CreateFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, file *schema.MediaFile) error {
			created = file
			return nil
		})

	ht.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *domain.MediaEvent) error {
			assert.Equal(t, domain.MediaEventUploaded, event.Type)
			return nil
		})
	ht.blobs.EXPECT().URL(gomock.Any()).Return("http://cdn/x").AnyTimes()

	rec := ht.do(multipartUpload(t, "lot.png", buf.Bytes(), map[string]string{"folder": "inventory", "alt": "the lot"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, created)
	assert.Equal(t, "lot.png", created.Name)
	assert.Equal(t, "image/png", created.MimeType)
	assert.Equal(t, schema.MediaKindImage, created.Kind)
	assert.Equal(t, "inventory", created.FolderID)
	assert.Equal(t, "the lot", created.Alt)
	require.NotNil(t, created.Width)
	assert.Equal(t, 20, *created.Width)
	require.NotNil(t, created.Height)
	assert.Equal(t, 10, *created.Height)
	require.NotNil(t, created.ThumbnailPath)
	assert.Equal(t, created.ID+"-thumb.jpg", *created.ThumbnailPath)
	assert.True(t, strings.HasPrefix(storagePath, created.ID))
}

func TestUploadFile_EmptyFile(t *testing.T) {
	ht := newHandlerTest(t)

	rec := ht.do(multipartUpload(t, "empty.jpg", nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rec))
}

func TestUploadFile_MissingFilePart(t *testing.T) {
	ht := newHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", strings.NewReader("not multipart"))
	rec := ht.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFile_UnknownFolderRollsBackBlob(t *testing.T) {
	ht := newHandlerTest(t)

	data := []byte("%PDF-1.4 not really a pdf but close enough")

	var storagePath string
	ht.blobs.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(path string, _ []byte) error {
			storagePath = path
			return nil
		})
	ht.store.EXPECT().CreateFile(gomock.Any(), gomock.Any()).Return(store.ErrFolderNotFound)
	ht.blobs.EXPECT().Remove(gomock.Any()).
		DoAndReturn(func(path string) error {
			assert.Equal(t, storagePath, path)
			return nil
		})

	rec := ht.do(multipartUpload(t, "brochure.pdf", data, map[string]string{"folder": "ghost"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))
}

func TestUpdateFile_MoveEmitsMovedEvent(t *testing.T) {
	ht := newHandlerTest(t)

	folder := "inventory"
	ht.store.EXPECT().UpdateFile(gomock.Any(), "f1", gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, update store.FileUpdate) (*schema.MediaFile, error) {
			require.NotNil(t, update.FolderID)
			assert.Equal(t, folder, *update.FolderID)
			// Tags arrive normalized
			assert.Equal(t, []string{"red", "ferrari"}, update.Tags)
			return &schema.MediaFile{ID: "f1", FolderID: folder, StoragePath: "f1.jpg", Tags: datatypes.JSON([]byte(`["red","ferrari"]`))}, nil
		})
	ht.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *domain.MediaEvent) error {
			assert.Equal(t, domain.MediaEventMoved, event.Type)
			assert.Equal(t, "inventory", event.FolderID)
			return nil
		})
	ht.blobs.EXPECT().URL("f1.jpg").Return("http://cdn/f1.jpg")

	rec := ht.do(jsonRequest(t, http.MethodPatch, "/api/v1/files/f1",
		`{"folder":"inventory","tags":["red"," red ","","ferrari"]}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteFile_RequiresAPIKey(t *testing.T) {
	ht := newHandlerTest(t)

	rec := ht.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/f1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteFile_RemovesBlobsAndPublishes(t *testing.T) {
	ht := newHandlerTest(t)

	thumb := "f1-thumb.jpg"
	ht.store.EXPECT().DeleteFiles(gomock.Any(), []string{"f1"}).
		Return([]schema.MediaFile{{ID: "f1", StoragePath: "f1.jpg", ThumbnailPath: &thumb}}, nil)
	ht.blobs.EXPECT().Remove("f1.jpg").Return(nil)
	ht.blobs.EXPECT().Remove("f1-thumb.jpg").Return(nil)
	ht.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *domain.MediaEvent) error {
			assert.Equal(t, domain.MediaEventDeleted, event.Type)
			assert.Equal(t, []string{"f1"}, event.ItemIDs)
			return nil
		})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/f1", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := ht.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":1}`, rec.Body.String())
}

func TestDeleteFiles_AuthorizationHeaderScheme(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().DeleteFiles(gomock.Any(), []string{"a", "b"}).Return(nil, nil)

	req := jsonRequest(t, http.MethodPost, "/api/v1/files/delete", `{"ids":["a","b"]}`)
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	rec := ht.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":0}`, rec.Body.String())
}

func TestMoveFiles_RequiresIDsAndFolder(t *testing.T) {
	ht := newHandlerTest(t)

	rec := ht.do(jsonRequest(t, http.MethodPost, "/api/v1/files/move", `{"ids":["a"]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMoveFiles(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().MoveFiles(gomock.Any(), []string{"a", "b"}, "inventory").Return(nil)
	ht.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	rec := ht.do(jsonRequest(t, http.MethodPost, "/api/v1/files/move", `{"ids":["a","b"],"folder":"inventory"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"moved":2}`, rec.Body.String())
}

func TestCreateFolder(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().CreateFolder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, folder *schema.MediaFolder) error {
			assert.Equal(t, "inventory", folder.Name)
			assert.NotEmpty(t, folder.ID)
			folder.Path = "/inventory"
			return nil
		})

	rec := ht.do(jsonRequest(t, http.MethodPost, "/api/v1/folders", `{"name":"inventory"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var folder struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &folder))
	assert.Equal(t, "/inventory", folder.Path)
}

func TestUpdateFolder_RootImmutable(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().UpdateFolderName(gomock.Any(), "root", "renamed").
		Return(nil, store.ErrRootFolderImmutable)

	rec := ht.do(jsonRequest(t, http.MethodPatch, "/api/v1/folders/root", `{"name":"renamed"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFolder_WithContents(t *testing.T) {
	ht := newHandlerTest(t)

	ht.store.EXPECT().DeleteFolder(gomock.Any(), "inventory", true).
		Return([]schema.MediaFile{{ID: "a", StoragePath: "a.jpg"}}, nil)
	ht.blobs.EXPECT().Remove("a.jpg").Return(nil)
	ht.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/folders/inventory?delete_contents=true", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := ht.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted_files":1}`, rec.Body.String())
}

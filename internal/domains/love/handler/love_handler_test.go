package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cupid-backend/internal/config"
	"cupid-backend/internal/domains/love/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// STUB SERVICE
// ========================================

type stubService struct {
	createID  string
	createErr error
	getLove   *model.LovePage
	getErr    error

	gotSubmission *model.Submission
	gotID         string
}

func (s *stubService) CreateLovePage(ctx context.Context, sub *model.Submission) (string, error) {
	s.gotSubmission = sub
	if s.createErr != nil {
		return "", s.createErr
	}
	if err := sub.Validate(); err != nil {
		return "", err
	}
	return s.createID, nil
}

func (s *stubService) GetLovePage(ctx context.Context, id string) (*model.LovePage, error) {
	s.gotID = id
	return s.getLove, s.getErr
}

// ========================================
// HELPERS
// ========================================

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxFileSize:     15 * 1024 * 1024,
		MaxSongs:        5,
		StrictMediaType: true,
		Timeout:         30 * time.Second,
	}
}

func newTestRouter(svc *stubService, upload config.UploadConfig) *gin.Engine {
	h := NewLoveHandler(svc, upload)

	router := gin.New()
	router.POST("/api/create", h.Create)
	router.GET("/api/love/:id", h.GetByID)
	return router
}

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func buildMultipart(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		header.Set("Content-Type", f.contentType)

		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doRequest(router *gin.Engine, method, target, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

// ========================================
// POST /api/create
// ========================================

func TestCreate_MultipartSuccess(t *testing.T) {
	svc := &stubService{createID: primitive.NewObjectID().Hex()}
	router := newTestRouter(svc, testUploadConfig())

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi", "password": "secret"},
		[]filePart{
			{"photo", "us.jpg", "image/jpeg", bytes.Repeat([]byte{0xff}, 1024)},
			{"songs", "one.mp3", "audio/mpeg", []byte("one")},
			{"songs", "two.mp3", "audio/mpeg", []byte("two")},
		},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, svc.createID, resp["id"])

	// Submission được parse đúng và giữ thứ tự songs
	require.NotNil(t, svc.gotSubmission)
	assert.Equal(t, model.SubmissionMultipart, svc.gotSubmission.Kind)
	assert.Equal(t, "secret", svc.gotSubmission.Password)
	require.Len(t, svc.gotSubmission.Songs, 2)
	assert.Equal(t, "one.mp3", svc.gotSubmission.Songs[0].OriginalName)
	assert.Equal(t, "two.mp3", svc.gotSubmission.Songs[1].OriginalName)
	require.NotNil(t, svc.gotSubmission.Photo)
	assert.Equal(t, "image/jpeg", svc.gotSubmission.Photo.ContentType)
}

func TestCreate_PhotoMissing(t *testing.T) {
	svc := &stubService{createID: "unused"}
	router := newTestRouter(svc, testUploadConfig())

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi"},
		[]filePart{{"songs", "one.mp3", "audio/mpeg", []byte("one")}},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, messageOf(t, rec), "Photo")
}

func TestCreate_TooManySongParts(t *testing.T) {
	svc := &stubService{createID: "unused"}
	router := newTestRouter(svc, testUploadConfig())

	files := []filePart{{"photo", "us.jpg", "image/jpeg", []byte{1}}}
	for i := 0; i < 6; i++ {
		files = append(files, filePart{"songs", "s.mp3", "audio/mpeg", []byte{2}})
	}

	body, contentType := buildMultipart(t, map[string]string{"name": "A", "message": "hi"}, files)
	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotSubmission, "rejected before reaching the service")
}

func TestCreate_SecondPhotoPartRejected(t *testing.T) {
	svc := &stubService{createID: "unused"}
	router := newTestRouter(svc, testUploadConfig())

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi"},
		[]filePart{
			{"photo", "a.jpg", "image/jpeg", []byte{1}},
			{"photo", "b.jpg", "image/jpeg", []byte{2}},
		},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_OversizedFileRejected(t *testing.T) {
	upload := testUploadConfig()
	upload.MaxFileSize = 16 // bytes

	svc := &stubService{createID: "unused"}
	router := newTestRouter(svc, upload)

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi"},
		[]filePart{{"photo", "us.jpg", "image/jpeg", bytes.Repeat([]byte{0xff}, 64)}},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, messageOf(t, rec), "too large")
}

func TestCreate_JSONMode(t *testing.T) {
	svc := &stubService{createID: primitive.NewObjectID().Hex()}
	router := newTestRouter(svc, testUploadConfig())

	payload, _ := json.Marshal(model.CreateLoveJSONRequest{
		Name:    "A",
		Message: "hi",
		Photo:   "https://cdn.example.com/us.jpg",
		Songs:   []string{"https://cdn.example.com/one.mp3"},
	})

	rec := doRequest(router, http.MethodPost, "/api/create", "application/json", bytes.NewBuffer(payload))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, svc.gotSubmission)
	assert.Equal(t, model.SubmissionJSON, svc.gotSubmission.Kind)
	assert.Equal(t, "https://cdn.example.com/us.jpg", svc.gotSubmission.PhotoURL)
}

func TestCreate_MalformedJSON(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc, testUploadConfig())

	rec := doRequest(router, http.MethodPost, "/api/create", "application/json", bytes.NewBufferString("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_StorageFailureIsOpaque500(t *testing.T) {
	svc := &stubService{createErr: model.ErrStorageFailure}
	router := newTestRouter(svc, testUploadConfig())

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi"},
		[]filePart{{"photo", "us.jpg", "image/jpeg", []byte{1}}},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server Error", messageOf(t, rec), "no internal detail leaks to the client")
}

func TestCreate_TimeoutReported(t *testing.T) {
	svc := &stubService{createErr: context.DeadlineExceeded}
	router := newTestRouter(svc, testUploadConfig())

	body, contentType := buildMultipart(t,
		map[string]string{"name": "A", "message": "hi"},
		[]filePart{{"photo", "us.jpg", "image/jpeg", []byte{1}}},
	)

	rec := doRequest(router, http.MethodPost, "/api/create", contentType, body)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

// ========================================
// GET /api/love/:id
// ========================================

func TestGetByID_Found(t *testing.T) {
	love := &model.LovePage{
		ID:      primitive.NewObjectID(),
		Name:    "A",
		Message: "hi",
		Photo:   "/uploads/us.jpg",
		Songs:   []string{"/uploads/one.mp3", "/uploads/two.mp3"},
	}
	svc := &stubService{getLove: love}
	router := newTestRouter(svc, testUploadConfig())

	rec := doRequest(router, http.MethodGet, "/api/love/"+love.ID.Hex(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, love.ID.Hex(), svc.gotID)

	var resp model.LovePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, love.Photo, resp.Photo)
	assert.Equal(t, love.Songs, resp.Songs)
}

func TestGetByID_MalformedID(t *testing.T) {
	svc := &stubService{getErr: model.ErrInvalidID}
	router := newTestRouter(svc, testUploadConfig())

	rec := doRequest(router, http.MethodGet, "/api/love/not-a-valid-id", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID", messageOf(t, rec))
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &stubService{getErr: model.ErrLoveNotFound}
	router := newTestRouter(svc, testUploadConfig())

	rec := doRequest(router, http.MethodGet, "/api/love/"+primitive.NewObjectID().Hex(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Page Not Found", messageOf(t, rec))
}

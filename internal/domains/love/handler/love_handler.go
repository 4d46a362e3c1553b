package handler

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/config"
	"cupid-backend/internal/domains/love/model"
	"cupid-backend/internal/domains/love/service"
	"cupid-backend/internal/infrastructure/storage"
	"cupid-backend/internal/shared/response"
)

// LoveHandler - HTTP layer, delegate hết business logic xuống service
type LoveHandler struct {
	service service.Service
	upload  config.UploadConfig
}

func NewLoveHandler(svc service.Service, upload config.UploadConfig) *LoveHandler {
	return &LoveHandler{
		service: svc,
		upload:  upload,
	}
}

// Create - POST /api/create
// Nhận multipart form (binary upload) hoặc JSON (URLs đã resolve sẵn),
// phân biệt bằng Content-Type. Toàn bộ submission chạy trong một
// wall-clock budget; quá budget trả 504.
func (h *LoveHandler) Create(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.upload.Timeout)
	defer cancel()

	sub, err := h.parseSubmission(c)
	if model.HandleLoveError(c, err) {
		return
	}

	id, err := h.service.CreateLovePage(ctx, sub)
	if model.HandleLoveError(c, err) {
		return
	}

	response.CreatedWithID(c, id, "Love page created")
}

// GetByID - GET /api/love/:id
func (h *LoveHandler) GetByID(c *gin.Context) {
	love, err := h.service.GetLovePage(c.Request.Context(), c.Param("id"))
	if model.HandleLoveError(c, err) {
		return
	}

	response.OK(c, love)
}

// parseSubmission đọc request body thành Submission union.
// Với multipart: đọc từng file vào memory, check size TRƯỚC khi đọc để
// không buffer một file quá giới hạn.
func (h *LoveHandler) parseSubmission(c *gin.Context) (*model.Submission, error) {
	contentType := c.GetHeader("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(c)
	}

	var req model.CreateLoveJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, model.ErrMalformedBody
	}
	return req.ToSubmission(), nil
}

func (h *LoveHandler) parseMultipart(c *gin.Context) (*model.Submission, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, model.ErrMalformedBody
	}

	sub := &model.Submission{
		Kind:     model.SubmissionMultipart,
		Name:     firstValue(form.Value["name"]),
		Message:  firstValue(form.Value["message"]),
		Password: firstValue(form.Value["password"]),
	}

	photos := form.File[storage.RolePhoto]
	if len(photos) > 1 {
		return nil, model.ErrTooManyPhotos
	}
	if len(photos) == 1 {
		photo, err := h.readUpload(photos[0])
		if err != nil {
			return nil, err
		}
		sub.Photo = photo
	}

	songFiles := form.File[storage.RoleSongs]
	if len(songFiles) > h.upload.MaxSongs {
		return nil, model.ErrTooManySongs
	}
	for _, fh := range songFiles {
		song, err := h.readUpload(fh)
		if err != nil {
			return nil, err
		}
		sub.Songs = append(sub.Songs, song)
	}

	return sub, nil
}

// readUpload buffer một file part vào memory
func (h *LoveHandler) readUpload(fh *multipart.FileHeader) (*model.AssetUpload, error) {
	if fh.Size > h.upload.MaxFileSize {
		return nil, storage.ErrPayloadTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.upload.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.upload.MaxFileSize {
		return nil, storage.ErrPayloadTooLarge
	}

	return &model.AssetUpload{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         int64(len(data)),
		Data:         data,
	}, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

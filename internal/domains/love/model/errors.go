package model

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cupid-backend/internal/infrastructure/storage"
	"cupid-backend/internal/shared/response"
)

var (
	// Validation
	ErrMalformedBody = errors.New("malformed request body")
	ErrPhotoRequired = errors.New("photo is required")
	ErrTooManyPhotos = errors.New("only one photo is allowed")
	ErrTooManySongs  = errors.New("a maximum of 5 songs is allowed")
	ErrEmptySongURL  = errors.New("song url must not be empty")

	// Asset policy (strict media type check)
	ErrPhotoNotImage = errors.New("only images allowed")
	ErrSongNotAudio  = errors.New("only audio allowed")

	// Lookup
	ErrInvalidID    = errors.New("invalid id")
	ErrLoveNotFound = errors.New("page not found")

	// Infrastructure
	ErrStorageFailure = errors.New("failed to store uploaded file")
	ErrPersistence    = errors.New("failed to save love page")
)

var loveErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrMalformedBody:           {Status: http.StatusBadRequest, Message: "Malformed request body"},
	ErrPhotoRequired:           {Status: http.StatusBadRequest, Message: "Photo is required"},
	ErrTooManyPhotos:           {Status: http.StatusBadRequest, Message: "Only one photo is allowed"},
	ErrTooManySongs:            {Status: http.StatusBadRequest, Message: "A maximum of 5 songs is allowed"},
	ErrEmptySongURL:            {Status: http.StatusBadRequest, Message: "Song URLs must not be empty"},
	ErrPhotoNotImage:           {Status: http.StatusBadRequest, Message: "Only images allowed"},
	ErrSongNotAudio:            {Status: http.StatusBadRequest, Message: "Only audio allowed"},
	ErrInvalidID:               {Status: http.StatusBadRequest, Message: "Invalid ID"},
	ErrLoveNotFound:            {Status: http.StatusNotFound, Message: "Page Not Found"},
	storage.ErrPayloadTooLarge: {Status: http.StatusBadRequest, Message: "File too large (max 15MB)"},
}

// HandleLoveError map domain error sang HTTP response.
// Trả về true nếu err != nil (caller return luôn sau khi gọi).
func HandleLoveError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range loveErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message)
			return true
		}
	}

	// Field validation từ ozzo
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, err.Error())
		return true
	}

	// Submission vượt quá processing budget
	if errors.Is(err, context.DeadlineExceeded) {
		response.GatewayTimeout(c, "Upload timed out")
		return true
	}

	// Lỗi không xác định - không leak chi tiết ra client
	log.Printf("[Handler] Unexpected error: %v", err)
	response.InternalServerError(c, "Server Error")
	return true
}

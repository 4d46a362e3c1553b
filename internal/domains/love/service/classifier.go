package service

import (
	"strings"

	"cupid-backend/internal/domains/love/model"
	"cupid-backend/internal/infrastructure/storage"
)

// classifyAsset kiểm tra declared media type theo role của asset:
// photo phải là image/*, song phải là audio/*. Chạy TRƯỚC mọi storage
// write để không tốn công ghi content không hợp lệ.
func classifyAsset(role, contentType string) error {
	switch role {
	case storage.RolePhoto:
		if !strings.HasPrefix(contentType, "image/") {
			return model.ErrPhotoNotImage
		}
	case storage.RoleSongs:
		if !strings.HasPrefix(contentType, "audio/") {
			return model.ErrSongNotAudio
		}
	}
	return nil
}

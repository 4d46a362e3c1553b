package storage

import (
	"context"
	"errors"
)

// Asset roles, trùng với tên field của multipart form
const (
	RolePhoto = "photo"
	RoleSongs = "songs"
)

// ErrPayloadTooLarge được trả về trước khi ghi bất kỳ byte nào
var ErrPayloadTooLarge = errors.New("file exceeds the maximum allowed size")

// Backend durably stores a named binary blob and returns a stable locator:
// a relative path (local driver) or a fully-qualified URL (minio driver).
// Store is all-or-nothing: on error no partial file is exposed.
type Backend interface {
	Store(ctx context.Context, role, originalName, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, locator string) error
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"cupid-backend/internal/config"
)

// LocalStorage ghi assets xuống một thư mục được quản lý trên disk.
// Locator là URL path public (vd: /uploads/<uuid>.jpg) — thư mục này được
// serve read-only bởi router khi driver = local.
type LocalStorage struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewLocalStorage tạo thư mục đích nếu chưa tồn tại
func NewLocalStorage(cfg config.StorageConfig, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", cfg.LocalDir, err)
	}

	return &LocalStorage{
		dir:       cfg.LocalDir,
		urlPrefix: strings.TrimSuffix(cfg.LocalURLPrefix, "/"),
		maxSize:   maxSize,
	}, nil
}

// Dir trả về thư mục đang quản lý (router cần để mount static serving)
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Store writes data under a collision-resistant generated filename.
// The write goes to a temp file first and is renamed into place, so a
// failed write never leaves a partial file at the final path.
func (s *LocalStorage) Store(ctx context.Context, role, originalName, contentType string, data []byte) (string, error) {
	if int64(len(data)) > s.maxSize {
		return "", ErrPayloadTooLarge
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uuid.NewString() + fileExtension(originalName, data)
	finalPath := filepath.Join(s.dir, filename)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}

	return s.urlPrefix + "/" + filename, nil
}

// Remove xóa file theo locator (best effort cleanup)
func (s *LocalStorage) Remove(ctx context.Context, locator string) error {
	filename := path.Base(locator)
	if filename == "." || filename == "/" || filename == "" {
		return fmt.Errorf("invalid locator %q", locator)
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", filename, err)
	}
	return nil
}

// fileExtension lấy extension từ tên file gốc, fallback sniff nội dung
// khi client gửi tên file không có extension
func fileExtension(originalName string, data []byte) string {
	if ext := filepath.Ext(originalName); ext != "" && len(ext) <= 8 {
		return strings.ToLower(ext)
	}
	return mimetype.Detect(data).Extension()
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cupid-backend/internal/config"
)

// MinIOStorage uploads assets to a MinIO bucket and hands back canonical
// retrieval URLs as locators.
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	folder  string
	maxSize int64
	scheme  string
}

// NewMinIOStorage khởi tạo MinIO client
func NewMinIOStorage(cfg config.MinIOConfig, maxSize int64) (*MinIOStorage, error) {
	// Tạo MinIO client với credentials
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL, // false cho local, true cho production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Kiểm tra bucket có tồn tại không, nếu không thì tạo mới
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinIOStorage{
		client:  client,
		bucket:  cfg.Bucket,
		folder:  strings.Trim(cfg.Folder, "/"),
		maxSize: maxSize,
		scheme:  scheme,
	}, nil
}

// Store uploads one asset under <folder>/<role>/<uuid><ext>.
// key ví dụ: loves/photo/3f2a...-c1.jpg
func (s *MinIOStorage) Store(ctx context.Context, role, originalName, contentType string, data []byte) (string, error) {
	if int64(len(data)) > s.maxSize {
		return "", ErrPayloadTooLarge
	}

	key := fmt.Sprintf("%s/%s/%s%s", s.folder, role, uuid.NewString(), fileExtension(originalName, data))

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	// Canonical retrieval URL
	// Format: http://localhost:9000/cupid/loves/photo/<uuid>.jpg
	locator := fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.client.EndpointURL().Host, s.bucket, key)

	return locator, nil
}

// Remove xóa một object theo locator URL (best effort cleanup)
func (s *MinIOStorage) Remove(ctx context.Context, locator string) error {
	key, err := s.extractKeyFromURL(locator)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// extractKeyFromURL đảo ngược URL về object key
// Path: /cupid/loves/photo/<uuid>.jpg → loves/photo/<uuid>.jpg
func (s *MinIOStorage) extractKeyFromURL(locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("invalid locator %q: %w", locator, err)
	}

	p := strings.TrimPrefix(u.Path, "/")

	// Split và bỏ bucket name
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[0] != s.bucket {
		return "", fmt.Errorf("locator %q does not belong to bucket %s", locator, s.bucket)
	}

	return parts[1], nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cupid-backend/internal/domains/love/model"
	"cupid-backend/internal/domains/love/repository"
	"cupid-backend/internal/infrastructure/storage"
	"cupid-backend/pkg/logger"
)

// cleanupTimeout giới hạn thời gian reclaim assets mồ côi sau một
// submission thất bại
const cleanupTimeout = 10 * time.Second

type loveService struct {
	repo        repository.Repository
	storage     storage.Backend
	strictMedia bool
}

func NewLoveService(repo repository.Repository, backend storage.Backend, strictMediaType bool) Service {
	return &loveService{
		repo:        repo,
		storage:     backend,
		strictMedia: strictMediaType,
	}
}

// CreateLovePage orchestrate toàn bộ ingestion:
//  1. validate submission (chưa có side effect nào)
//  2. classify mọi asset (strict mode) — vẫn chưa ghi gì
//  3. store photo rồi từng song theo đúng thứ tự client gửi
//  4. build record, persist, trả về id
//
// Bất kỳ failure nào sau khi đã store một phần assets sẽ reclaim các
// locators đã ghi, nên một submission fail không để lại orphan nào.
func (s *loveService) CreateLovePage(ctx context.Context, sub *model.Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}

	var photo string
	var songs []string

	if sub.Kind == model.SubmissionJSON {
		// Locators đã resolve sẵn, không đụng storage backend
		photo = sub.PhotoURL
		songs = append([]string{}, sub.SongURLs...)
	} else {
		if s.strictMedia {
			if err := classifyAsset(storage.RolePhoto, sub.Photo.ContentType); err != nil {
				return "", err
			}
			for _, song := range sub.Songs {
				if err := classifyAsset(storage.RoleSongs, song.ContentType); err != nil {
					return "", err
				}
			}
		}

		stored, err := s.storeAssets(ctx, sub)
		if err != nil {
			return "", err
		}
		photo = stored[0]
		songs = stored[1:]
	}

	love := &model.LovePage{
		Name:     sub.Name,
		Message:  sub.Message,
		Password: sub.Password,
		Photo:    photo,
		Songs:    songs,
	}

	id, err := s.repo.Create(ctx, love)
	if err != nil {
		if sub.Kind == model.SubmissionMultipart {
			s.reclaim(append([]string{photo}, songs...))
		}
		return "", err
	}

	logger.Info("Love page created", map[string]interface{}{
		"id":    id,
		"songs": len(songs),
	})

	return id, nil
}

// storeAssets ghi photo rồi từng song theo thứ tự submission.
// Trả về slice locators với photo ở index 0. Nếu một store fail giữa
// chừng, các locators đã ghi trước đó được reclaim.
func (s *loveService) storeAssets(ctx context.Context, sub *model.Submission) ([]string, error) {
	stored := make([]string, 0, 1+len(sub.Songs))

	photoLoc, err := s.storage.Store(ctx, storage.RolePhoto, sub.Photo.OriginalName, sub.Photo.ContentType, sub.Photo.Data)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	stored = append(stored, photoLoc)

	for _, song := range sub.Songs {
		songLoc, err := s.storage.Store(ctx, storage.RoleSongs, song.OriginalName, song.ContentType, song.Data)
		if err != nil {
			s.reclaim(stored)
			return nil, wrapStorageErr(err)
		}
		stored = append(stored, songLoc)
	}

	return stored, nil
}

// reclaim best-effort xóa các assets đã store của một submission thất bại.
// Dùng context tách khỏi request: cleanup vẫn phải chạy được khi request
// context đã quá deadline.
func (s *loveService) reclaim(locators []string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	for _, locator := range locators {
		if err := s.storage.Remove(ctx, locator); err != nil {
			logger.Warn("Failed to reclaim stored asset "+locator, err)
		}
	}
}

// GetLovePage là read path duy nhất: pass-through xuống repository.
// Không cache, không enforce password (so sánh password là việc của client).
func (s *loveService) GetLovePage(ctx context.Context, id string) (*model.LovePage, error) {
	return s.repo.FindByID(ctx, id)
}

func wrapStorageErr(err error) error {
	if errors.Is(err, storage.ErrPayloadTooLarge) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStorageFailure, err)
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// SUBMISSION (tagged union)
// ========================================

// SubmissionKind phân biệt hai dạng body của POST /api/create:
// multipart (binary upload) hoặc JSON (locators đã resolve sẵn).
type SubmissionKind int

const (
	SubmissionMultipart SubmissionKind = iota
	SubmissionJSON
)

// AssetUpload là một file nhận từ multipart form, giữ trong memory cho tới
// khi storage backend commit xong.
type AssetUpload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
}

// Submission là input của ingestion service.
// Kind = SubmissionMultipart: Photo/Songs chứa binary uploads.
// Kind = SubmissionJSON: PhotoURL/SongURLs chứa locators có sẵn.
type Submission struct {
	Kind SubmissionKind

	Name     string
	Message  string
	Password string

	Photo *AssetUpload
	Songs []*AssetUpload

	PhotoURL string
	SongURLs []string
}

// MaxSongs là giới hạn mặc định số bài hát cho một love page
const MaxSongs = 5

// Validate chạy trước mọi storage write: fail ở đây nghĩa là chưa có
// side effect nào xảy ra.
func (s *Submission) Validate() error {
	if err := validation.ValidateStruct(s,
		validation.Field(&s.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&s.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 5000).Error("message must be at most 5000 characters"),
		),
	); err != nil {
		// ozzo trả validation.Errors — handler map về 400
		return err
	}

	switch s.Kind {
	case SubmissionMultipart:
		if s.Photo == nil {
			return ErrPhotoRequired
		}
		if len(s.Songs) > MaxSongs {
			return ErrTooManySongs
		}
	case SubmissionJSON:
		if s.PhotoURL == "" {
			return ErrPhotoRequired
		}
		if len(s.SongURLs) > MaxSongs {
			return ErrTooManySongs
		}
		for _, u := range s.SongURLs {
			if u == "" {
				return ErrEmptySongURL
			}
		}
	}

	return nil
}

// ========================================
// JSON MODE DTO
// ========================================

// CreateLoveJSONRequest là body của POST /api/create khi client gửi JSON
// với URLs thay vì upload file.
type CreateLoveJSONRequest struct {
	Name     string   `json:"name"`
	Message  string   `json:"message"`
	Password string   `json:"password"`
	Photo    string   `json:"photo"`
	Songs    []string `json:"songs"`
}

func (r CreateLoveJSONRequest) ToSubmission() *Submission {
	return &Submission{
		Kind:     SubmissionJSON,
		Name:     r.Name,
		Message:  r.Message,
		Password: r.Password,
		PhotoURL: r.Photo,
		SongURLs: r.Songs,
	}
}

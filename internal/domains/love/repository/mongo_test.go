package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cupid-backend/internal/domains/love/model"
)

// FindByID phải từ chối id sai định dạng trước khi chạm database —
// repo với collection nil chứng minh không có round trip nào xảy ra.
func TestFindByID_MalformedIDShortCircuits(t *testing.T) {
	repo := &mongoRepository{collection: nil}

	malformed := []string{
		"",
		"not-a-valid-id",
		"12345",
		"zzzzzzzzzzzzzzzzzzzzzzzz",                 // đúng độ dài, sai hex
		"68b3a1f2c9d4e5f6a7b8c9d0ff",               // quá dài
		"<script>alert(1)</script>",
	}

	for _, id := range malformed {
		t.Run("id="+id, func(t *testing.T) {
			love, err := repo.FindByID(context.Background(), id)
			assert.Nil(t, love)
			assert.ErrorIs(t, err, model.ErrInvalidID, "must be invalid-id, never not-found")
		})
	}
}

package repository

import (
	"context"

	"cupid-backend/internal/domains/love/model"
)

// Repository persist và resolve LovePage records.
// Create gán identifier atomically cùng với write — caller không bao giờ
// tự dựng id. FindByID phân biệt id sai định dạng (ErrInvalidID) với id
// đúng định dạng nhưng không có record (ErrLoveNotFound).
type Repository interface {
	Create(ctx context.Context, love *model.LovePage) (string, error)
	FindByID(ctx context.Context, id string) (*model.LovePage, error)
}

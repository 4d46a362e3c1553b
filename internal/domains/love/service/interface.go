package service

import (
	"context"

	"cupid-backend/internal/domains/love/model"
)

// Service là toàn bộ business logic của love domain:
// ingestion (validate → classify → store → persist) và retrieval.
type Service interface {
	CreateLovePage(ctx context.Context, sub *model.Submission) (string, error)
	GetLovePage(ctx context.Context, id string) (*model.LovePage, error)
}

package app

import (
	"context"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// PartReader is the read-only catalog surface for the public endpoints.
type PartReader interface {
	List(ctx context.Context) ([]domain.Part, error)
	Get(ctx context.Context, partID string) (domain.Part, error)
}

// PartService serves the unauthenticated parts catalog.
type PartService struct {
	repo PartReader
}

func NewPartService(repo PartReader) *PartService {
	return &PartService{repo: repo}
}

func (s *PartService) List(ctx context.Context) ([]domain.Part, error) {
	return s.repo.List(ctx)
}

func (s *PartService) Get(ctx context.Context, partID string) (domain.Part, error) {
	if partID == "" {
		return domain.Part{}, domain.ErrInvalidID
	}
	return s.repo.Get(ctx, partID)
}

package catalog

import (
	"context"

	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines read access to the bakery menu.
type Service interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id int) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

package service

import (
	"context"
	"fmt"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var (
	_ port.CatalogBrowser = (*CatalogService)(nil)
	_ port.CatalogEditor  = (*CatalogService)(nil)
)

// CatalogService serves the storefront listing: the full catalog is read
// from the repository, narrowed by the search query, then filtered and
// sorted in memory.
type CatalogService struct {
	repo port.CatalogRepository
}

func NewCatalogService(repo port.CatalogRepository) CatalogService {
	return CatalogService{repo}
}

func (s CatalogService) Browse(
	ctx context.Context, query string, spec domain.FilterSpec,
) ([]domain.Product, error) {
	const op = "CatalogService.Browse"

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps = domain.Search(ps, query)
	return domain.Apply(ps, spec), nil
}

func (s CatalogService) SaveProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "CatalogService.SaveProducts"

	if len(ps) == 0 {
		return nil
	}
	if err := s.repo.UpsertProducts(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogService) RemoveProduct(
	ctx context.Context, productID string,
) error {
	const op = "CatalogService.RemoveProduct"

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

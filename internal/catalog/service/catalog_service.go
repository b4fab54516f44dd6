package service

import (
	"context"
	"errors"

	"github.com/ridloal/go-shop-server/internal/catalog/domain"
	"github.com/ridloal/go-shop-server/internal/catalog/repository"
)

var ErrCategoryNotFound = errors.New("no products found for this category")

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, productID int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
}

type catalogServiceImpl struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{repo: repo}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogServiceImpl) GetProductDetails(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// ListProductsByCategory: kategori tanpa produk dianggap tidak ada (404),
// mengikuti kontrak API.
func (s *catalogServiceImpl) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrCategoryNotFound
	}
	return products, nil
}

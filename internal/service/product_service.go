package service

import (
	"context"
	"fmt"

	"catalog-orders/internal/domain"
	"catalog-orders/internal/repository"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, name string, price float64, sizes []domain.ProductSize) (domain.ID, error)
	List(ctx context.Context, filter domain.ProductFilter, page domain.Page) (*ProductPage, error)
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Products []*domain.Product
	Page     domain.PageInfo
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create stores a product exactly as given. Names are not required to be unique.
func (s *productService) Create(ctx context.Context, name string, price float64, sizes []domain.ProductSize) (domain.ID, error) {
	product := &domain.Product{
		Name:  name,
		Price: price,
		Sizes: sizes,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// List returns the requested page of products matching filter
func (s *productService) List(ctx context.Context, filter domain.ProductFilter, page domain.Page) (*ProductPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	products, total, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{
		Products: products,
		Page:     page.Info(total),
	}, nil
}

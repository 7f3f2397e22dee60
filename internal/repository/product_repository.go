package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-orders/internal/database"
	"catalog-orders/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (domain.ID, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error)
}

// productDocument is the stored shape of a product.
type productDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Sizes []sizeDocument     `bson:"sizes" json:"sizes"`
}

type sizeDocument struct {
	Size     string `bson:"size" json:"size"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type productRepository struct {
	gw database.Gateway
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(gw database.Gateway) ProductRepository {
	return &productRepository{gw: gw}
}

// Create stores name, price and sizes; the id is assigned by the store
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (domain.ID, error) {
	id, err := r.gw.Insert(ctx, database.Products, toProductDocument(product))
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	var doc productDocument
	if err := r.gw.FindByID(ctx, database.Products, id, &doc); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of products matching filter, ordered by id, and the
// total number of matches counted separately over the same filter.
func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	f := productFilter(filter)

	total, err := r.gw.Count(ctx, database.Products, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var docs []productDocument
	if err := r.gw.Find(ctx, database.Products, f, page, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}

	return products, total, nil
}

func productFilter(filter domain.ProductFilter) database.Filter {
	f := database.Filter{}
	if filter.Name != nil && *filter.Name != "" {
		f = append(f, database.ContainsFold("name", *filter.Name))
	}
	if filter.Size != nil && *filter.Size != "" {
		f = append(f, database.AnyEq("sizes", "size", *filter.Size))
	}
	return f
}

func toProductDocument(p *domain.Product) productDocument {
	sizes := make([]sizeDocument, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, sizeDocument{Size: s.Size, Quantity: s.Quantity})
	}
	return productDocument{
		Name:  p.Name,
		Price: p.Price,
		Sizes: sizes,
	}
}

func (d productDocument) toDomain() *domain.Product {
	sizes := make([]domain.ProductSize, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		sizes = append(sizes, domain.ProductSize{Size: s.Size, Quantity: s.Quantity})
	}
	return &domain.Product{
		ID:    domain.ID(d.ID),
		Name:  d.Name,
		Price: d.Price,
		Sizes: sizes,
	}
}

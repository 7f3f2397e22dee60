package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-orders/internal/domain"
	"catalog-orders/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency bounds the product lookups in flight for one order.
const lookupConcurrency = 8

var (
	// ErrProductNotFound is returned when an order references a product that
	// does not exist. The whole listing fails rather than omitting the item.
	ErrProductNotFound = errors.New("referenced product not found")
)

// OrderService defines the interface for order business logic
type OrderService interface {
	Create(ctx context.Context, userID string, items []domain.OrderItem) (domain.ID, error)
	ListForUser(ctx context.Context, userID string, page domain.Page) (*OrderPage, error)
}

// OrderPage is one page of a user's orders
type OrderPage struct {
	Orders []*OrderSummary
	Page   domain.PageInfo
}

// OrderSummary is an order with its items resolved against the catalog.
type OrderSummary struct {
	ID    domain.ID
	Items []OrderLine
	// Total is the sum of the unit prices of the items. Quantities are not
	// multiplied in.
	Total float64
}

// OrderLine is an order item with the referenced product's name
type OrderLine struct {
	ProductID   domain.ID
	ProductName string
	Qty         int
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create stores the order without checking that its products exist
func (s *orderService) Create(ctx context.Context, userID string, items []domain.OrderItem) (domain.ID, error) {
	order := &domain.Order{
		UserID: userID,
		Items:  items,
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

// ListForUser returns the requested page of the user's orders with every
// item resolved against the catalog
func (s *orderService) ListForUser(ctx context.Context, userID string, page domain.Page) (*OrderPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	orders, total, err := s.orderRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]*OrderSummary, 0, len(orders))
	for _, order := range orders {
		summary, err := s.summarize(ctx, order)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return &OrderPage{
		Orders: summaries,
		Page:   page.Info(total),
	}, nil
}

// summarize looks up every product of the order. Lookups run concurrently
// but lines keep the order of the items.
func (s *orderService) summarize(ctx context.Context, order *domain.Order) (*OrderSummary, error) {
	lines := make([]OrderLine, len(order.Items))
	prices := make([]decimal.Decimal, len(order.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i, item := range order.Items {
		g.Go(func() error {
			product, err := s.productRepo.FindByID(gctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return fmt.Errorf("%w: product %s in order %s", ErrProductNotFound, item.ProductID, order.ID)
				}
				return fmt.Errorf("failed to look up product %s: %w", item.ProductID, err)
			}

			lines[i] = OrderLine{
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Qty:         item.Qty,
			}
			prices[i] = decimal.NewFromFloat(product.Price)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &OrderSummary{
		ID:    order.ID,
		Items: lines,
		Total: decimal.Sum(decimal.Zero, prices...).InexactFloat64(),
	}, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-orders/internal/database"
	"catalog-orders/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformedOrder is returned when a stored order cannot be mapped back to
// the domain, such as an item whose productId is not a valid identifier.
var ErrMalformedOrder = errors.New("stored order is malformed")

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (domain.ID, error)
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]*domain.Order, int64, error)
}

// orderDocument is the stored shape of an order. Product ids are kept in
// their text form.
type orderDocument struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID string              `bson:"userId" json:"userId"`
	Items  []orderItemDocument `bson:"items" json:"items"`
}

type orderItemDocument struct {
	ProductID string `bson:"productId" json:"productId"`
	Qty       int    `bson:"qty" json:"qty"`
}

type orderRepository struct {
	gw database.Gateway
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(gw database.Gateway) OrderRepository {
	return &orderRepository{gw: gw}
}

// Create stores the order's user and items without checking the products exist
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (domain.ID, error) {
	items := make([]orderItemDocument, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDocument{ProductID: item.ProductID.String(), Qty: item.Qty})
	}

	id, err := r.gw.Insert(ctx, database.Orders, orderDocument{UserID: order.UserID, Items: items})
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

// ListByUser returns a page of the user's orders ordered by id, and the total
// number of orders the user has.
func (r *orderRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]*domain.Order, int64, error) {
	f := database.Filter{database.Eq("userId", userID)}

	total, err := r.gw.Count(ctx, database.Orders, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var docs []orderDocument
	if err := r.gw.Find(ctx, database.Orders, f, page, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

func (d orderDocument) toDomain() (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		productID, err := domain.ParseID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: order %s: %v", ErrMalformedOrder, d.ID.Hex(), err)
		}
		items = append(items, domain.OrderItem{ProductID: productID, Qty: item.Qty})
	}
	return &domain.Order{
		ID:     domain.ID(d.ID),
		UserID: d.UserID,
		Items:  items,
	}, nil
}

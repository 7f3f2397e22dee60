package repository

import (
	"context"
	"testing"

	"catalog-orders/internal/database"
	"catalog-orders/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestProductFilter(t *testing.T) {
	assert.Empty(t, productFilter(domain.ProductFilter{}))
	assert.Empty(t, productFilter(domain.ProductFilter{Name: strPtr(""), Size: strPtr("")}))

	f := productFilter(domain.ProductFilter{Name: strPtr("Red"), Size: strPtr("M")})
	assert.Equal(t, database.Filter{
		database.ContainsFold("name", "Red"),
		database.AnyEq("sizes", "size", "M"),
	}, f)
}

func TestProductRepository_FindByIDMissing(t *testing.T) {
	productRepo := NewProductRepository(database.NewMemoryGateway())

	_, err := productRepo.FindByID(context.Background(), domain.NewID())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	orderRepo := NewOrderRepository(database.NewMemoryGateway())

	productID := domain.NewID()
	var created []domain.ID
	for i := 0; i < 3; i++ {
		id, err := orderRepo.Create(ctx, &domain.Order{
			UserID: "alice",
			Items:  []domain.OrderItem{{ProductID: productID, Qty: i + 1}},
		})
		require.NoError(t, err)
		created = append(created, id)
	}
	_, err := orderRepo.Create(ctx, &domain.Order{UserID: "bob", Items: []domain.OrderItem{{ProductID: productID, Qty: 1}}})
	require.NoError(t, err)

	orders, total, err := orderRepo.ListByUser(ctx, "alice", domain.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, created[1], orders[0].ID)
	assert.Equal(t, created[2], orders[1].ID)
	assert.Equal(t, "alice", orders[0].UserID)
	assert.Equal(t, []domain.OrderItem{{ProductID: productID, Qty: 3}}, orders[1].Items)
}

func TestOrderRepository_MalformedStoredProductID(t *testing.T) {
	ctx := context.Background()
	gw := database.NewMemoryGateway()
	orderRepo := NewOrderRepository(gw)

	_, err := gw.Insert(ctx, database.Orders, orderDocument{
		UserID: "alice",
		Items:  []orderItemDocument{{ProductID: "not-an-id", Qty: 1}},
	})
	require.NoError(t, err)

	_, _, err = orderRepo.ListByUser(ctx, "alice", domain.DefaultPage())
	assert.ErrorIs(t, err, ErrMalformedOrder)
	assert.NotErrorIs(t, err, domain.ErrInvalidID)
}

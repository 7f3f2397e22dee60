package service

import (
	"context"
	"sync/atomic"

	"catalog-orders/internal/database"
	"catalog-orders/internal/domain"
	"catalog-orders/internal/repository"
)

// recordingGateway wraps an in-memory gateway, counting calls and failing
// every call with err when it is set.
type recordingGateway struct {
	database.Gateway
	calls atomic.Int64
	err   error
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{Gateway: database.NewMemoryGateway()}
}

func (g *recordingGateway) Insert(ctx context.Context, coll database.Collection, doc any) (domain.ID, error) {
	g.calls.Add(1)
	if g.err != nil {
		return domain.NilID, g.err
	}
	return g.Gateway.Insert(ctx, coll, doc)
}

func (g *recordingGateway) Count(ctx context.Context, coll database.Collection, filter database.Filter) (int64, error) {
	g.calls.Add(1)
	if g.err != nil {
		return 0, g.err
	}
	return g.Gateway.Count(ctx, coll, filter)
}

func (g *recordingGateway) Find(ctx context.Context, coll database.Collection, filter database.Filter, page domain.Page, out any) error {
	g.calls.Add(1)
	if g.err != nil {
		return g.err
	}
	return g.Gateway.Find(ctx, coll, filter, page, out)
}

func (g *recordingGateway) FindByID(ctx context.Context, coll database.Collection, id domain.ID, out any) error {
	g.calls.Add(1)
	if g.err != nil {
		return g.err
	}
	return g.Gateway.FindByID(ctx, coll, id, out)
}

func newServices(gw database.Gateway) (ProductService, OrderService) {
	productRepo := repository.NewProductRepository(gw)
	orderRepo := repository.NewOrderRepository(gw)
	return NewProductService(productRepo), NewOrderService(orderRepo, productRepo)
}

func strPtr(s string) *string {
	return &s
}

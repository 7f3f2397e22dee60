package database

import (
	"context"
	"errors"

	"catalog-orders/internal/domain"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Collection names a bucket of documents of a similar kind.
type Collection string

const (
	Products Collection = "products"
	Orders   Collection = "orders"
)

// Gateway is the document store behind the services. Each call is an
// independent operation; there are no transactions and no retries.
type Gateway interface {
	// Insert stores doc and returns the identifier generated for it.
	Insert(ctx context.Context, coll Collection, doc any) (domain.ID, error)
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, coll Collection, filter Filter) (int64, error)
	// Find decodes the documents matching filter, sorted by id ascending and
	// windowed by page, into out, which must be a pointer to a slice.
	Find(ctx context.Context, coll Collection, filter Filter, page domain.Page, out any) error
	// FindByID decodes a single document into out. It returns ErrNotFound
	// when no document has the id.
	FindByID(ctx context.Context, coll Collection, id domain.ID, out any) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

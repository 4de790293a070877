package application

import (
	"context"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

// ProductStore is the narrow persistence surface the catalog depends on.
// Every operation is atomic for the single record it touches; there are no
// cross-record transactions.
type ProductStore interface {
	GetByID(ctx context.Context, id uint64) (domain.Product, bool, error)
	// FindByName matches on the normalized name.
	FindByName(ctx context.Context, name string) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// NextSequence atomically increments and returns the named counter,
	// initializing it to zero first if it does not exist. Two concurrent
	// callers never observe the same post-increment value.
	NextSequence(ctx context.Context, key string) (uint64, error)
}

// EventPublisher delivers one outcome message to a named topic,
// at-least-once.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderUpdateRequested) error
}

package port

import (
	"context"

	"resaletrack/internal/domain"
)

// ItemReader provides the read queries the reporting engine composes.
type ItemReader interface {
	CountAll(ctx context.Context) (int, error)
	CountSold(ctx context.Context, rng domain.DateRange) (int, error)
	QueryItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	// FirstImageFor returns the earliest uploaded image of an item, or
	// domain.ErrNotFound when the item has none.
	FirstImageFor(ctx context.Context, sku int64) (*domain.ItemImage, error)
}

// ItemRepository is an ItemReader that can also pin a consistent snapshot.
type ItemRepository interface {
	ItemReader
	// ReadSnapshot runs fn against a reader whose queries all observe the
	// same committed state.
	ReadSnapshot(ctx context.Context, fn func(ItemReader) error) error
}

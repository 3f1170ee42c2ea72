package port

import (
	"context"

	"resaletrack/internal/domain"
)

// ObjectStorage abstracts read access to cloud object storage.
type ObjectStorage interface {
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}

// ThumbnailLinker turns a stored item image into a reference a client can display.
type ThumbnailLinker interface {
	Link(ctx context.Context, img *domain.ItemImage) (string, error)
}

package ports

import (
	"context"

	"deck-thumbnail-service/internal/core/domain"
)

// CardSource is the third-party card database.
type CardSource interface {
	Autocomplete(ctx context.Context, partial string) ([]string, error)
	// SearchArts returns every distinct art crop printed for the exact card name.
	SearchArts(ctx context.Context, name string) ([]domain.CardArtOption, error)
}

// ImageFetcher downloads an image body. Implementations reject bodies larger
// than maxBytes with a *domain.ImageError.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string, maxBytes int64) (*domain.ImageBlob, error)
}

// ImageCache stores fetched images by URL. Entries never expire.
type ImageCache interface {
	Get(ctx context.Context, url string) (*domain.ImageBlob, bool, error)
	Set(ctx context.Context, url string, blob *domain.ImageBlob) error
}

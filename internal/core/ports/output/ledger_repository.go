package ports

import (
	"context"
	"time"

	"deck-thumbnail-service/internal/core/domain"
)

// DeckNameRepository persists deck names keyed by exact (case-sensitive) name.
type DeckNameRepository interface {
	Upsert(ctx context.Context, name string, usedAt time.Time) error
	// Search returns names containing query, most recently used first.
	Search(ctx context.Context, query string, limit int) ([]*domain.DeckName, error)
}

// ArtUsageRepository persists art usage keyed by art URL.
type ArtUsageRepository interface {
	Upsert(ctx context.Context, rec *domain.ArtUsageRecord) error
	FindByURLs(ctx context.Context, urls []string) ([]*domain.ArtUsageRecord, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

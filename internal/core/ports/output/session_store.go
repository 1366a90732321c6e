package ports

import (
	"context"

	"github.com/google/uuid"

	"deck-thumbnail-service/internal/core/editor"
)

// SessionStore keeps editor sessions between requests.
type SessionStore interface {
	Create(ctx context.Context, s *editor.Session) error
	Get(ctx context.Context, id uuid.UUID) (*editor.Session, error)
	// Update applies fn to the stored session under the store's lock and
	// persists the result. fn must not retain s.
	Update(ctx context.Context, id uuid.UUID, fn func(s *editor.Session) error) (*editor.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package editor

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Session is a stored editor. Logo holds the decoded custom logo, if any.
type Session struct {
	ID        uuid.UUID   `json:"id"`
	State     State       `json:"state"`
	Logo      image.Image `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		State:     New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy safe to hand out of a store.
func (s *Session) Clone() *Session {
	c := *s
	c.State = s.State.clone()
	return &c
}

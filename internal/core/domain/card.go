package domain

import "time"

// CardArtOption is one candidate art crop for a card, sourced live from the
// card API and never persisted directly.
type CardArtOption struct {
	ArtURL  string `json:"art_url"`
	SetCode string `json:"set_code"`
	PrintID string `json:"print_id"`
	CardID  string `json:"card_id"`
	Artist  string `json:"artist,omitempty"`
}

// AnnotatedArtOption is a CardArtOption with its last recorded use, if any.
// The annotation is advisory and never blocks selection.
type AnnotatedArtOption struct {
	CardArtOption
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

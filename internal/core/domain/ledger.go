package domain

import "time"

// ============================================================================
// Usage Ledger
// ============================================================================

// DeckName is a deck name remembered for autocomplete, ranked by recency.
type DeckName struct {
	Name       string    `json:"name"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// ArtUsageRecord records the last time an art image was placed into a
// thumbnail. ArtURL is globally unique regardless of the slot that used it.
type ArtUsageRecord struct {
	ArtURL     string    `json:"art_url"`
	CardID     string    `json:"card_id"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// DeckNameSearchLimit caps deck name autocomplete results.
const DeckNameSearchLimit = 10

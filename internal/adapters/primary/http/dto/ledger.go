package dto

import (
	"time"

	"deck-thumbnail-service/internal/core/domain"
)

type UpsertDeckNameRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type DeckNameResponse struct {
	Name       string `json:"name"`
	LastUsedAt string `json:"last_used_at"`
}

type ListDeckNamesResponse struct {
	Items []DeckNameResponse `json:"items"`
}

func ToDeckNameResponse(d *domain.DeckName) DeckNameResponse {
	return DeckNameResponse{
		Name:       d.Name,
		LastUsedAt: d.LastUsedAt.UTC().Format(time.RFC3339),
	}
}

func ToListDeckNamesResponse(names []*domain.DeckName) ListDeckNamesResponse {
	items := make([]DeckNameResponse, 0, len(names))
	for _, n := range names {
		items = append(items, ToDeckNameResponse(n))
	}
	return ListDeckNamesResponse{Items: items}
}

type UpsertArtUsageRequest struct {
	ArtURL string `json:"art_url" binding:"required"`
	CardID string `json:"card_id" binding:"required"`
}

type LookupArtUsageRequest struct {
	URLs []string `json:"urls" binding:"required,max=500"`
}

type ArtUsageResponse struct {
	ArtURL     string `json:"art_url"`
	CardID     string `json:"card_id"`
	LastUsedAt string `json:"last_used_at"`
}

type LookupArtUsageResponse struct {
	Items map[string]ArtUsageResponse `json:"items"`
}

func ToLookupArtUsageResponse(recs map[string]*domain.ArtUsageRecord) LookupArtUsageResponse {
	items := make(map[string]ArtUsageResponse, len(recs))
	for url, rec := range recs {
		items[url] = ArtUsageResponse{
			ArtURL:     rec.ArtURL,
			CardID:     rec.CardID,
			LastUsedAt: rec.LastUsedAt.UTC().Format(time.RFC3339),
		}
	}
	return LookupArtUsageResponse{Items: items}
}

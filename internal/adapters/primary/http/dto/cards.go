package dto

import (
	"time"

	"deck-thumbnail-service/internal/core/domain"
)

type AutocompleteResponse struct {
	Items []string `json:"items"`
}

type ArtOptionResponse struct {
	ArtURL     string  `json:"art_url"`
	SetCode    string  `json:"set_code"`
	PrintID    string  `json:"print_id"`
	CardID     string  `json:"card_id"`
	Artist     string  `json:"artist,omitempty"`
	LastUsedAt *string `json:"last_used_at"`
}

type ListArtOptionsResponse struct {
	Items []ArtOptionResponse `json:"items"`
}

func ToArtOptionResponse(o domain.CardArtOption) ArtOptionResponse {
	return ArtOptionResponse{
		ArtURL:  o.ArtURL,
		SetCode: o.SetCode,
		PrintID: o.PrintID,
		CardID:  o.CardID,
		Artist:  o.Artist,
	}
}

func ToListArtOptionsResponse(opts []domain.AnnotatedArtOption) ListArtOptionsResponse {
	items := make([]ArtOptionResponse, 0, len(opts))
	for _, o := range opts {
		r := ToArtOptionResponse(o.CardArtOption)
		if o.LastUsedAt != nil {
			s := o.LastUsedAt.UTC().Format(time.RFC3339)
			r.LastUsedAt = &s
		}
		items = append(items, r)
	}
	return ListArtOptionsResponse{Items: items}
}

package dto

import (
	"deck-thumbnail-service/internal/core/canvas"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
	"deck-thumbnail-service/internal/core/services"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ThumbnailRequest describes a thumbnail to lay out or render without a
// session. It always uses the default logo.
type ThumbnailRequest struct {
	LeftDeck   string               `json:"left_deck" binding:"max=200"`
	RightDeck  string               `json:"right_deck" binding:"max=200"`
	Mode       string               `json:"mode"`
	StreamDate string               `json:"stream_date"`
	EventName  string               `json:"event_name" binding:"max=200"`
	Art        []QuadrantArtRequest `json:"art" binding:"max=4,dive"`
}

// QuadrantArtRequest places one art image. Without a view the image is
// fitted to cover its quadrant.
type QuadrantArtRequest struct {
	Quadrant string       `json:"quadrant" binding:"required"`
	ArtURL   string       `json:"art_url" binding:"required"`
	CardID   string       `json:"card_id"`
	View     *ViewRequest `json:"view"`
}

type ViewRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale" binding:"gt=0"`
}

type LogoOverridesRequest struct {
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	YOffset float64  `json:"y_offset"`
}

// ============================================================================
// Converters
// ============================================================================

// ParseMode treats an empty mode as video.
func ParseMode(s string) (domain.Mode, error) {
	if s == "" {
		return domain.ModeVideo, nil
	}
	return domain.ParseMode(s)
}

func ToLogoOverrides(req *LogoOverridesRequest) layout.LogoOverrides {
	if req == nil {
		return layout.LogoOverrides{}
	}
	return layout.LogoOverrides{X: req.X, Y: req.Y, YOffset: req.YOffset}
}

// ToThumbnail converts req, rejecting unknown modes and quadrants.
func ToThumbnail(req *ThumbnailRequest) (services.Thumbnail, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return services.Thumbnail{}, err
	}

	t := services.Thumbnail{
		LeftDeck:   req.LeftDeck,
		RightDeck:  req.RightDeck,
		Mode:       mode,
		StreamDate: req.StreamDate,
		EventName:  req.EventName,
	}
	for _, a := range req.Art {
		q, err := domain.ParseQuadrant(a.Quadrant)
		if err != nil {
			return services.Thumbnail{}, err
		}
		art := &services.ThumbnailArt{ArtURL: a.ArtURL, CardID: a.CardID}
		if a.View != nil {
			art.View = &canvas.View{X: a.View.X, Y: a.View.Y, Scale: a.View.Scale}
		}
		t.Art[q] = art
	}
	return t, nil
}

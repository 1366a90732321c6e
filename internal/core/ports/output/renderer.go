package ports

import (
	"context"
	"image"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
)

// RenderAssets are the decoded images referenced by a layout.
type RenderAssets struct {
	Art  map[domain.Quadrant]image.Image
	Logo image.Image
}

// ThumbnailRenderer rasterizes a layout. scale multiplies every coordinate,
// so a 960x540 layout at 1.3334 yields a 1280x720 image.
type ThumbnailRenderer interface {
	RenderPNG(ctx context.Context, l layout.Layout, assets RenderAssets, scale float64) ([]byte, error)
}

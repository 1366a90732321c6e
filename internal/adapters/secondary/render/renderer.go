package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type renderer struct {
	fonts *Fonts
}

// NewRenderer creates a PNG renderer drawing text with fonts.
func NewRenderer(fonts *Fonts) ports.ThumbnailRenderer {
	return &renderer{fonts: fonts}
}

func (r *renderer) RenderPNG(ctx context.Context, l layout.Layout, assets ports.RenderAssets, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(l.Width * scale))
	h := int(math.Round(l.Height * scale))
	dc := gg.NewContext(w, h)
	dc.SetHexColor("#000000")
	dc.Clear()

	for _, img := range l.Images {
		src := assets.Art[img.Quadrant]
		if src == nil {
			continue
		}
		drawClipped(dc, src, img.Dest, img.Clip, scale)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, bar := range l.Bars {
		red, green, blue := hexRGB(bar.Color)
		dc.SetRGBA(red, green, blue, bar.Opacity)
		dc.DrawRectangle(bar.Rect.X*scale, bar.Rect.Y*scale, bar.Rect.W*scale, bar.Rect.H*scale)
		dc.Fill()
	}

	dc.SetHexColor(l.Divider.Color)
	dc.SetLineWidth(l.Divider.Width * scale)
	dc.DrawLine(l.Divider.X1*scale, l.Divider.Y1*scale, l.Divider.X2*scale, l.Divider.Y2*scale)
	dc.Stroke()

	dc.SetHexColor(l.Border.Color)
	dc.SetLineWidth(l.Border.Width * scale)
	b := l.Border.Rect
	dc.DrawRectangle(b.X*scale, b.Y*scale, b.W*scale, b.H*scale)
	dc.Stroke()

	if l.Logo != nil && assets.Logo != nil {
		canvas := layout.Rect{W: l.Width, H: l.Height}
		drawClipped(dc, assets.Logo, *l.Logo, canvas, scale)
	}

	for _, run := range l.Texts {
		if err := r.drawText(dc, run, scale); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawClipped crops the part of src that dest shows inside clip and scales
// only that part. Resize cost is bounded by the clip, not by dest.
func drawClipped(dc *gg.Context, src image.Image, dest, clip layout.Rect, scale float64) {
	if dest.W <= 0 || dest.H <= 0 {
		return
	}
	bounds := src.Bounds()
	sx := float64(bounds.Dx()) / dest.W
	sy := float64(bounds.Dy()) / dest.H

	// visible part of dest, in layout coordinates
	x0 := math.Max(clip.X, dest.X)
	y0 := math.Max(clip.Y, dest.Y)
	x1 := math.Min(clip.Right(), dest.Right())
	y1 := math.Min(clip.Bottom(), dest.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return
	}

	crop := image.Rect(
		bounds.Min.X+int(math.Floor((x0-dest.X)*sx)),
		bounds.Min.Y+int(math.Floor((y0-dest.Y)*sy)),
		bounds.Min.X+int(math.Ceil((x1-dest.X)*sx)),
		bounds.Min.Y+int(math.Ceil((y1-dest.Y)*sy)),
	).Intersect(bounds)
	if crop.Empty() {
		return
	}

	px0 := int(math.Round(x0 * scale))
	py0 := int(math.Round(y0 * scale))
	pw := int(math.Round(x1*scale)) - px0
	ph := int(math.Round(y1*scale)) - py0
	if pw <= 0 || ph <= 0 {
		return
	}

	visible := imaging.Resize(imaging.Crop(src, crop), pw, ph, imaging.Lanczos)
	dc.DrawImage(visible, px0, py0)
}

func (r *renderer) drawText(dc *gg.Context, run layout.TextRun, scale float64) error {
	ft := layout.Font{Size: run.Font.Size * scale, Bold: run.Font.Bold}
	return r.fonts.withFace(ft, func(face font.Face) {
		dc.SetFontFace(face)
		dc.SetHexColor(run.Color)
		for i, line := range run.Lines {
			dc.DrawStringAnchored(line, run.CenterX*scale, run.LineCenterY(i)*scale, 0.5, 0.5)
		}
	})
}

// hexRGB parses "#rrggbb". Anything else is black.
func hexRGB(hex string) (float64, float64, float64) {
	var r, g, b uint8
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	if n, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
		log.WithError(err).WithField("color", hex).Warn("invalid bar color")
		return 0, 0, 0
	}
	return float64(r) / 255, float64(g) / 255, float64(b) / 255
}

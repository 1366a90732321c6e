// Package canvas models the pan/zoom state of an art image inside its
// quadrant. Every operation returns a clamped copy.
package canvas

import (
	"math"

	"deck-thumbnail-service/internal/core/layout"
)

// ZoomStep is the scale factor applied per wheel notch.
const ZoomStep = 1.1

// View places an image of NaturalWidth x NaturalHeight at (X, Y) with Scale,
// clipped to Bounds.
type View struct {
	Bounds        layout.Rect `json:"bounds"`
	NaturalWidth  float64     `json:"natural_width"`
	NaturalHeight float64     `json:"natural_height"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Scale         float64     `json:"scale"`
}

// Fit returns a view that covers bounds with the image centered.
func Fit(bounds layout.Rect, naturalWidth, naturalHeight float64) View {
	v := View{Bounds: bounds, NaturalWidth: naturalWidth, NaturalHeight: naturalHeight}
	if !v.Loaded() {
		return v
	}
	v.Scale = v.CoverScale()
	v.X = bounds.X + (bounds.W-naturalWidth*v.Scale)/2
	v.Y = bounds.Y + (bounds.H-naturalHeight*v.Scale)/2
	return v.Clamp()
}

// Loaded reports whether the view has a usable natural size.
func (v View) Loaded() bool {
	return v.NaturalWidth > 0 && v.NaturalHeight > 0
}

// CoverScale is the smallest scale at which the image covers Bounds.
func (v View) CoverScale() float64 {
	if !v.Loaded() {
		return 0
	}
	return math.Max(v.Bounds.W/v.NaturalWidth, v.Bounds.H/v.NaturalHeight)
}

// Rect is the rendered rect of the image, before clipping.
func (v View) Rect() layout.Rect {
	return layout.Rect{X: v.X, Y: v.Y, W: v.NaturalWidth * v.Scale, H: v.NaturalHeight * v.Scale}
}

// Drag moves the image by (dx, dy).
func (v View) Drag(dx, dy float64) View {
	if !v.Loaded() || !finite(dx) || !finite(dy) {
		return v
	}
	v.X += dx
	v.Y += dy
	return v.Clamp()
}

// Zoom scales by ZoomStep per notch around (px, py). Positive notches
// zoom in.
func (v View) Zoom(px, py, notches float64) View {
	if !v.Loaded() || !finite(px) || !finite(py) || !finite(notches) {
		return v
	}
	next := v.Scale * math.Pow(ZoomStep, notches)
	if next < v.CoverScale() {
		next = v.CoverScale()
	}
	if v.Scale > 0 {
		ratio := next / v.Scale
		v.X = px - (px-v.X)*ratio
		v.Y = py - (py-v.Y)*ratio
	}
	v.Scale = next
	return v.Clamp()
}

// Clamp floors the scale at cover size and moves the image so it leaves
// no gap on any edge of Bounds.
func (v View) Clamp() View {
	if !v.Loaded() {
		return v
	}
	if cover := v.CoverScale(); !(v.Scale >= cover) || math.IsInf(v.Scale, 0) {
		v.Scale = cover
	}
	w, h := v.NaturalWidth*v.Scale, v.NaturalHeight*v.Scale
	v.X = clampAxis(v.X, v.Bounds.X, v.Bounds.W, w)
	v.Y = clampAxis(v.Y, v.Bounds.Y, v.Bounds.H, h)
	return v
}

// Rebound moves the view into new bounds, refitting the image.
func (v View) Rebound(bounds layout.Rect) View {
	return Fit(bounds, v.NaturalWidth, v.NaturalHeight)
}

func clampAxis(pos, start, extent, size float64) float64 {
	if !finite(pos) {
		pos = start
	}
	lo := start + extent - size
	if pos > start {
		pos = start
	}
	if pos < lo {
		pos = lo
	}
	return pos
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

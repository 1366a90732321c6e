// Package layout turns thumbnail inputs into drawable primitives. Everything
// here is pure: identical inputs and measurer give identical layouts.
package layout

import (
	"deck-thumbnail-service/internal/core/domain"
)

const (
	DefaultWidth  = 960.0
	DefaultHeight = 540.0

	LogoTargetHeight = 140.0
	Padding          = 20.0

	VideoBarHeight = 120.0
	BarOpacity     = 0.6
	BarFill        = "#000000"

	DeckFontMin = 24
	DeckFontMax = 48

	StreamBaseFont  = 40.0
	StreamDateScale = 0.6
	StreamLiveScale = 1.2
	LiveText        = "LIVE!"

	StrokeWidth = 4.0
	StrokeColor = "#ffffff"
	TextColor   = "#ffffff"
)

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether o lies inside r, allowing eps of float slack.
func (r Rect) Contains(o Rect, eps float64) bool {
	return r.X <= o.X+eps && r.Y <= o.Y+eps &&
		r.Right() >= o.Right()-eps && r.Bottom() >= o.Bottom()-eps
}

// QuadrantRect returns the bounds of q on a w x h canvas.
func QuadrantRect(w, h float64, q domain.Quadrant) Rect {
	hw, hh := w/2, h/2
	switch q {
	case domain.BottomLeft:
		return Rect{X: 0, Y: hh, W: hw, H: hh}
	case domain.TopRight:
		return Rect{X: hw, Y: 0, W: hw, H: hh}
	case domain.BottomRight:
		return Rect{X: hw, Y: hh, W: hw, H: hh}
	default:
		return Rect{X: 0, Y: 0, W: hw, H: hh}
	}
}

// ============================================================================
// Inputs
// ============================================================================

// Art is a loaded art image and the rect it is drawn into. Dest usually
// extends past the quadrant; drawing clips to the quadrant.
type Art struct {
	URL  string `json:"url"`
	Dest Rect   `json:"dest"`
}

type Input struct {
	Width      float64
	Height     float64
	LeftDeck   string
	RightDeck  string
	Art        [domain.QuadrantCount]*Art
	Mode       domain.Mode
	StreamDate string
	EventName  string
	Logo       LogoChoice
}

// ============================================================================
// Primitives
// ============================================================================

type Fill struct {
	Rect    Rect    `json:"rect"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

type Stroke struct {
	Rect  Rect    `json:"rect"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// TextRun is a block of lines centered horizontally on CenterX, stacked
// from Top with a LineHeight advance.
type TextRun struct {
	Name     string   `json:"name"`
	Lines    []string `json:"lines"`
	Font     Font     `json:"font"`
	CenterX  float64  `json:"center_x"`
	Top      float64  `json:"top"`
	MaxWidth float64  `json:"max_width"`
	Color    string   `json:"color"`
}

// LineCenterY is the vertical center of line i.
func (t TextRun) LineCenterY(i int) float64 {
	advance := t.Font.Size * LineHeight
	return t.Top + advance*(float64(i)+0.5)
}

type ImagePlacement struct {
	Quadrant domain.Quadrant `json:"quadrant"`
	URL      string          `json:"url"`
	Clip     Rect            `json:"clip"`
	Dest     Rect            `json:"dest"`
}

// Layout is the full set of primitives in drawing order: images, bars,
// divider, border, logo, texts.
type Layout struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Mode    domain.Mode      `json:"mode"`
	Images  []ImagePlacement `json:"images"`
	Bars    []Fill           `json:"bars"`
	Divider Line             `json:"divider"`
	Border  Stroke           `json:"border"`
	Logo    *Rect            `json:"logo,omitempty"`
	Texts   []TextRun        `json:"texts"`
}

// ============================================================================
// Compute
// ============================================================================

// Compute lays out a thumbnail. A nil measurer fits deck names at the
// maximum font size.
func Compute(in Input, m TextMeasurer) Layout {
	w, h := in.Width, in.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	mode := in.Mode
	if mode != domain.ModeStream {
		mode = domain.ModeVideo
	}
	logoChoice := in.Logo
	if logoChoice == nil {
		logoChoice = NoLogo{}
	}

	out := Layout{
		Width:  w,
		Height: h,
		Mode:   mode,
		Images: make([]ImagePlacement, 0, domain.QuadrantCount),
		Bars:   []Fill{},
		Texts:  []TextRun{},
		Divider: Line{
			X1: w / 2, Y1: 0, X2: w / 2, Y2: h,
			Width: StrokeWidth, Color: StrokeColor,
		},
		Border: Stroke{
			Rect:  Rect{X: 0, Y: 0, W: w, H: h},
			Width: StrokeWidth, Color: StrokeColor,
		},
	}

	for i, art := range in.Art {
		if art == nil || art.URL == "" {
			continue
		}
		q := domain.Quadrant(i)
		out.Images = append(out.Images, ImagePlacement{
			Quadrant: q,
			URL:      art.URL,
			Clip:     QuadrantRect(w, h, q),
			Dest:     art.Dest,
		})
	}

	logo, hasLogo := placeLogo(logoChoice, w, h)
	if hasLogo {
		out.Logo = &logo
	}

	switch mode {
	case domain.ModeVideo:
		layoutVideo(&out, in, logo, m)
	case domain.ModeStream:
		if hasLogo {
			layoutStream(&out, in, logo)
		}
	}

	return out
}

func layoutVideo(out *Layout, in Input, logo Rect, m TextMeasurer) {
	bar := Rect{X: 0, Y: (out.Height - VideoBarHeight) / 2, W: out.Width, H: VideoBarHeight}
	out.Bars = append(out.Bars, Fill{Rect: bar, Color: BarFill, Opacity: BarOpacity})

	maxHeight := VideoBarHeight - 2*Padding
	barCenter := bar.Y + bar.H/2

	left := Rect{X: Padding, W: max(0, logo.X-2*Padding)}
	rightX := logo.Right() + Padding
	right := Rect{X: rightX, W: max(0, out.Width-Padding-rightX)}

	for _, side := range []struct {
		name   string
		text   string
		region Rect
	}{
		{"left_deck", in.LeftDeck, left},
		{"right_deck", in.RightDeck, right},
	} {
		if side.text == "" {
			continue
		}
		size := FitFontSize(side.text, side.region.W, maxHeight, DeckFontMin, DeckFontMax, true, m)
		font := Font{Size: float64(size), Bold: true}
		lines := Wrap(side.text, side.region.W, font, m)
		out.Texts = append(out.Texts, TextRun{
			Name:     side.name,
			Lines:    lines,
			Font:     font,
			CenterX:  side.region.X + side.region.W/2,
			Top:      barCenter - WrappedHeight(len(lines), font.Size)/2,
			MaxWidth: side.region.W,
			Color:    TextColor,
		})
	}
}

func layoutStream(out *Layout, in Input, logo Rect) {
	out.Bars = append(out.Bars, Fill{
		Rect:    Rect{X: logo.X, Y: 0, W: logo.W, H: out.Height},
		Color:   BarFill,
		Opacity: BarOpacity,
	})

	centerX := logo.X + logo.W/2
	dateFont := Font{Size: StreamBaseFont * StreamDateScale, Bold: true}
	eventFont := Font{Size: EventFontSize(in.EventName), Bold: true}
	liveFont := Font{Size: StreamBaseFont * StreamLiveScale, Bold: true}

	// Date and event stack upward from the logo top; LIVE! hangs below it.
	eventTop := logo.Y - Padding - WrappedHeight(1, eventFont.Size)
	dateTop := eventTop - WrappedHeight(1, dateFont.Size)

	run := func(name, text string, font Font, top float64) TextRun {
		return TextRun{
			Name:     name,
			Lines:    []string{text},
			Font:     font,
			CenterX:  centerX,
			Top:      top,
			MaxWidth: logo.W,
			Color:    TextColor,
		}
	}

	if in.StreamDate != "" {
		out.Texts = append(out.Texts, run("stream_date", in.StreamDate, dateFont, dateTop))
	}
	if in.EventName != "" {
		out.Texts = append(out.Texts, run("event_name", in.EventName, eventFont, eventTop))
	}
	out.Texts = append(out.Texts, run("live", LiveText, liveFont, logo.Bottom()+Padding))
}

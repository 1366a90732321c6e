// Package editor holds the thumbnail editor state and the named transitions
// that change it. Transitions never mutate their receiver and never fail:
// inputs that do not apply return the state unchanged.
package editor

import (
	"deck-thumbnail-service/internal/core/canvas"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
)

// Slot is one quadrant's card and art.
type Slot struct {
	CardName string                `json:"card_name,omitempty"`
	CardID   string                `json:"card_id,omitempty"`
	Art      *domain.CardArtOption `json:"art,omitempty"`
	View     canvas.View           `json:"view"`
}

// Dialog is the open art-selection dialog for one quadrant.
type Dialog struct {
	Quadrant domain.Quadrant        `json:"quadrant"`
	CardName string                 `json:"card_name"`
	Options  []domain.CardArtOption `json:"options"`
}

type State struct {
	Width         float64                    `json:"width"`
	Height        float64                    `json:"height"`
	LeftDeck      string                     `json:"left_deck"`
	RightDeck     string                     `json:"right_deck"`
	Mode          domain.Mode                `json:"mode"`
	StreamDate    string                     `json:"stream_date"`
	EventName     string                     `json:"event_name"`
	Slots         [domain.QuadrantCount]Slot `json:"slots"`
	Dialog        *Dialog                    `json:"dialog,omitempty"`
	CustomLogo    *layout.LogoDetails        `json:"custom_logo,omitempty"`
	LogoOverrides layout.LogoOverrides       `json:"logo_overrides"`
}

// New returns an empty Video-mode editor on the default canvas.
func New() State {
	return State{
		Width:  layout.DefaultWidth,
		Height: layout.DefaultHeight,
		Mode:   domain.ModeVideo,
	}
}

func (s State) bounds(q domain.Quadrant) layout.Rect {
	return layout.QuadrantRect(s.Width, s.Height, q)
}

// clone copies the parts of s that are shared by reference.
func (s State) clone() State {
	if s.Dialog != nil {
		d := *s.Dialog
		d.Options = append([]domain.CardArtOption(nil), s.Dialog.Options...)
		s.Dialog = &d
	}
	for i := range s.Slots {
		if s.Slots[i].Art != nil {
			art := *s.Slots[i].Art
			s.Slots[i].Art = &art
		}
	}
	if s.CustomLogo != nil {
		d := *s.CustomLogo
		s.CustomLogo = &d
	}
	if o := s.LogoOverrides; o.X != nil || o.Y != nil {
		s.LogoOverrides = copyOverrides(o)
	}
	return s
}

func copyOverrides(o layout.LogoOverrides) layout.LogoOverrides {
	out := layout.LogoOverrides{YOffset: o.YOffset}
	if o.X != nil {
		x := *o.X
		out.X = &x
	}
	if o.Y != nil {
		y := *o.Y
		out.Y = &y
	}
	return out
}

// PendingLoads lists quadrants whose art is selected but not yet measured.
func (s State) PendingLoads() []domain.Quadrant {
	var out []domain.Quadrant
	for i, slot := range s.Slots {
		if slot.Art != nil && !slot.View.Loaded() {
			out = append(out, domain.Quadrant(i))
		}
	}
	return out
}

// LayoutInput converts the state into layout inputs, resolving the logo
// against def (the configured default logo, nil when none loaded).
func (s State) LayoutInput(def *layout.LogoDetails) layout.Input {
	in := layout.Input{
		Width:      s.Width,
		Height:     s.Height,
		LeftDeck:   s.LeftDeck,
		RightDeck:  s.RightDeck,
		Mode:       s.Mode,
		StreamDate: s.StreamDate,
		EventName:  s.EventName,
		Logo:       layout.ChooseLogo(s.CustomLogo, s.LogoOverrides, def),
	}
	if s.Mode == domain.ModeStream {
		in.LeftDeck, in.RightDeck = "", ""
	}
	for i, slot := range s.Slots {
		if slot.Art == nil || !slot.View.Loaded() {
			continue
		}
		in.Art[i] = &layout.Art{URL: slot.Art.ArtURL, Dest: slot.View.Rect()}
	}
	return in
}

package editor

import (
	"strings"

	"deck-thumbnail-service/internal/core/canvas"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
)

// ============================================================================
// Card and Art Selection
// ============================================================================

// SelectCard records cardName for q. A single art option is assigned
// directly; several open the selection dialog; none leaves q without art.
func (s State) SelectCard(q domain.Quadrant, cardName string, options []domain.CardArtOption) State {
	if !q.Valid() {
		return s
	}
	s = s.clone()
	s.Dialog = nil

	switch len(options) {
	case 0:
		s.Slots[q] = Slot{CardName: cardName}
	case 1:
		s.Slots[q] = assign(cardName, options[0])
	default:
		s.Dialog = &Dialog{
			Quadrant: q,
			CardName: cardName,
			Options:  append([]domain.CardArtOption(nil), options...),
		}
	}
	return s
}

// SelectArt assigns the dialog option with printID to the dialog quadrant
// and closes the dialog.
func (s State) SelectArt(printID string) State {
	if s.Dialog == nil {
		return s
	}
	for _, opt := range s.Dialog.Options {
		if opt.PrintID != printID {
			continue
		}
		q, name := s.Dialog.Quadrant, s.Dialog.CardName
		s = s.clone()
		s.Slots[q] = assign(name, opt)
		s.Dialog = nil
		return s
	}
	return s
}

// CloseDialog dismisses the dialog without changing any slot.
func (s State) CloseDialog() State {
	s = s.clone()
	s.Dialog = nil
	return s
}

func assign(cardName string, opt domain.CardArtOption) Slot {
	art := opt
	return Slot{CardName: cardName, CardID: opt.CardID, Art: &art}
}

// ArtLoaded fits q's view once the image at url has been measured. Loads
// for art that has since been replaced are ignored.
func (s State) ArtLoaded(q domain.Quadrant, url string, naturalWidth, naturalHeight float64) State {
	if !q.Valid() || s.Slots[q].Art == nil || s.Slots[q].Art.ArtURL != url {
		return s
	}
	s = s.clone()
	s.Slots[q].View = canvas.Fit(s.bounds(q), naturalWidth, naturalHeight)
	return s
}

// ClearSlot empties q.
func (s State) ClearSlot(q domain.Quadrant) State {
	if !q.Valid() {
		return s
	}
	s = s.clone()
	s.Slots[q] = Slot{}
	if s.Dialog != nil && s.Dialog.Quadrant == q {
		s.Dialog = nil
	}
	return s
}

// SwapQuadrants exchanges two slots, refitting each image to its new bounds.
func (s State) SwapQuadrants(a, b domain.Quadrant) State {
	if !a.Valid() || !b.Valid() || a == b {
		return s
	}
	s = s.clone()
	s.Slots[a], s.Slots[b] = s.Slots[b], s.Slots[a]
	for _, q := range []domain.Quadrant{a, b} {
		if s.Slots[q].View.Loaded() {
			s.Slots[q].View = s.Slots[q].View.Rebound(s.bounds(q))
		}
	}
	if s.Dialog != nil {
		switch s.Dialog.Quadrant {
		case a:
			s.Dialog.Quadrant = b
		case b:
			s.Dialog.Quadrant = a
		}
	}
	return s
}

// ============================================================================
// Mode and Text
// ============================================================================

// ChangeMode switches mode. Entering Stream clears both deck names.
func (s State) ChangeMode(m domain.Mode) State {
	if m != domain.ModeVideo && m != domain.ModeStream {
		return s
	}
	s = s.clone()
	s.Mode = m
	if m == domain.ModeStream {
		s.LeftDeck, s.RightDeck = "", ""
	}
	return s
}

// SetDeckNames sets both names. Deck names are hidden in Stream mode, so
// the call is ignored there.
func (s State) SetDeckNames(left, right string) State {
	if s.Mode == domain.ModeStream {
		return s
	}
	s = s.clone()
	s.LeftDeck = strings.TrimSpace(left)
	s.RightDeck = strings.TrimSpace(right)
	return s
}

func (s State) SetStreamInfo(date, eventName string) State {
	s = s.clone()
	s.StreamDate = strings.TrimSpace(date)
	s.EventName = strings.TrimSpace(eventName)
	return s
}

// ============================================================================
// Logo
// ============================================================================

// SetCustomLogo replaces the displayed logo. Overrides are reset.
func (s State) SetCustomLogo(d layout.LogoDetails) State {
	if d.NaturalWidth <= 0 || d.NaturalHeight <= 0 {
		return s
	}
	s = s.clone()
	s.CustomLogo = &d
	s.LogoOverrides = layout.LogoOverrides{}
	return s
}

func (s State) ClearCustomLogo() State {
	s = s.clone()
	s.CustomLogo = nil
	s.LogoOverrides = layout.LogoOverrides{}
	return s
}

// SetLogoOverrides positions the custom logo. Without a custom logo the
// default logo stays centered and the call is ignored.
func (s State) SetLogoOverrides(o layout.LogoOverrides) State {
	if s.CustomLogo == nil {
		return s
	}
	s = s.clone()
	s.LogoOverrides = copyOverrides(o)
	return s
}

// ============================================================================
// Pan and Zoom
// ============================================================================

func (s State) Drag(q domain.Quadrant, dx, dy float64) State {
	if !q.Valid() || !s.Slots[q].View.Loaded() {
		return s
	}
	s = s.clone()
	s.Slots[q].View = s.Slots[q].View.Drag(dx, dy)
	return s
}

// Zoom scales q's image around the canvas point (px, py).
func (s State) Zoom(q domain.Quadrant, px, py, notches float64) State {
	if !q.Valid() || !s.Slots[q].View.Loaded() {
		return s
	}
	s = s.clone()
	s.Slots[q].View = s.Slots[q].View.Zoom(px, py, notches)
	return s
}

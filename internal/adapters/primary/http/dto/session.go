package dto

import (
	"time"

	"github.com/google/uuid"

	"deck-thumbnail-service/internal/core/canvas"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/editor"
)

// ============================================================================
// Request DTOs
// ============================================================================

type SetDeckNamesRequest struct {
	LeftDeck  string `json:"left_deck" binding:"max=200"`
	RightDeck string `json:"right_deck" binding:"max=200"`
}

type ChangeModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type SetStreamInfoRequest struct {
	StreamDate string `json:"stream_date"`
	EventName  string `json:"event_name" binding:"max=200"`
}

type SelectCardRequest struct {
	CardName string `json:"card_name" binding:"required,max=200"`
}

type SelectArtRequest struct {
	PrintID string `json:"print_id" binding:"required"`
}

type SwapQuadrantsRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

type DragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ZoomRequest zooms around canvas point (X, Y). Positive notches zoom in.
type ZoomRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Notches float64 `json:"notches" binding:"required"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type ViewResponse struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Scale         float64 `json:"scale"`
	NaturalWidth  float64 `json:"natural_width"`
	NaturalHeight float64 `json:"natural_height"`
}

type SlotResponse struct {
	Quadrant string             `json:"quadrant"`
	CardName string             `json:"card_name"`
	CardID   string             `json:"card_id"`
	Art      *ArtOptionResponse `json:"art"`
	View     *ViewResponse      `json:"view"`
}

type DialogResponse struct {
	Quadrant string              `json:"quadrant"`
	CardName string              `json:"card_name"`
	Options  []ArtOptionResponse `json:"options"`
}

type LogoResponse struct {
	NaturalWidth  float64  `json:"natural_width"`
	NaturalHeight float64  `json:"natural_height"`
	X             *float64 `json:"x"`
	Y             *float64 `json:"y"`
	YOffset       float64  `json:"y_offset"`
}

type SessionResponse struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Mode       string          `json:"mode"`
	LeftDeck   string          `json:"left_deck"`
	RightDeck  string          `json:"right_deck"`
	StreamDate string          `json:"stream_date"`
	EventName  string          `json:"event_name"`
	Slots      []SlotResponse  `json:"slots"`
	Dialog     *DialogResponse `json:"dialog"`
	CustomLogo *LogoResponse   `json:"custom_logo"`
}

// ============================================================================
// Converters
// ============================================================================

func toViewResponse(v canvas.View) *ViewResponse {
	if !v.Loaded() {
		return nil
	}
	return &ViewResponse{
		X:             v.X,
		Y:             v.Y,
		Scale:         v.Scale,
		NaturalWidth:  v.NaturalWidth,
		NaturalHeight: v.NaturalHeight,
	}
}

func ToSessionResponse(sess *editor.Session) SessionResponse {
	st := sess.State
	resp := SessionResponse{
		ID:         sess.ID,
		CreatedAt:  sess.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  sess.UpdatedAt.UTC().Format(time.RFC3339),
		Width:      st.Width,
		Height:     st.Height,
		Mode:       string(st.Mode),
		LeftDeck:   st.LeftDeck,
		RightDeck:  st.RightDeck,
		StreamDate: st.StreamDate,
		EventName:  st.EventName,
		Slots:      make([]SlotResponse, 0, domain.QuadrantCount),
	}

	for i, slot := range st.Slots {
		s := SlotResponse{
			Quadrant: domain.Quadrant(i).String(),
			CardName: slot.CardName,
			CardID:   slot.CardID,
			View:     toViewResponse(slot.View),
		}
		if slot.Art != nil {
			art := ToArtOptionResponse(*slot.Art)
			s.Art = &art
		}
		resp.Slots = append(resp.Slots, s)
	}

	if d := st.Dialog; d != nil {
		opts := make([]ArtOptionResponse, 0, len(d.Options))
		for _, o := range d.Options {
			opts = append(opts, ToArtOptionResponse(o))
		}
		resp.Dialog = &DialogResponse{
			Quadrant: d.Quadrant.String(),
			CardName: d.CardName,
			Options:  opts,
		}
	}

	if l := st.CustomLogo; l != nil {
		resp.CustomLogo = &LogoResponse{
			NaturalWidth:  l.NaturalWidth,
			NaturalHeight: l.NaturalHeight,
			X:             st.LogoOverrides.X,
			Y:             st.LogoOverrides.Y,
			YOffset:       st.LogoOverrides.YOffset,
		}
	}
	return resp
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/editor"
	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// EditorService drives stored editor sessions through their transitions.
type EditorService struct {
	store      ports.SessionStore
	cards      *CardService
	images     *ImageProxyService
	thumbnails *ThumbnailService
}

// NewEditorService creates a new editor service
func NewEditorService(
	store ports.SessionStore,
	cards *CardService,
	images *ImageProxyService,
	thumbnails *ThumbnailService,
) *EditorService {
	return &EditorService{
		store:      store,
		cards:      cards,
		images:     images,
		thumbnails: thumbnails,
	}
}

// ============================================================================
// Sessions
// ============================================================================

func (s *EditorService) Create(ctx context.Context) (*editor.Session, error) {
	sess := editor.NewSession(time.Now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *EditorService) Get(ctx context.Context, id uuid.UUID) (*editor.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *EditorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Layout computes the session's current layout.
func (s *EditorService) Layout(ctx context.Context, id uuid.UUID) (layout.Layout, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return layout.Layout{}, err
	}
	in := sess.State.LayoutInput(s.thumbnails.DefaultLogoDetails())
	return layout.Compute(in, s.thumbnails.Measurer()), nil
}

// transition applies a pure state transition to the stored session.
func (s *EditorService) transition(ctx context.Context, id uuid.UUID, fn func(editor.State) editor.State) (*editor.Session, error) {
	return s.store.Update(ctx, id, func(sess *editor.Session) error {
		sess.State = fn(sess.State)
		return nil
	})
}

// ============================================================================
// Text and Mode
// ============================================================================

func (s *EditorService) SetDeckNames(ctx context.Context, id uuid.UUID, left, right string) (*editor.Session, error) {
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.SetDeckNames(left, right)
	})
}

func (s *EditorService) ChangeMode(ctx context.Context, id uuid.UUID, mode domain.Mode) (*editor.Session, error) {
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.ChangeMode(mode)
	})
}

func (s *EditorService) SetStreamInfo(ctx context.Context, id uuid.UUID, date, eventName string) (*editor.Session, error) {
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.SetStreamInfo(date, eventName)
	})
}

// ============================================================================
// Cards and Art
// ============================================================================

// SelectCard searches cardName's art and applies it to q. A single print
// is placed directly; several open the selection dialog.
func (s *EditorService) SelectCard(ctx context.Context, id uuid.UUID, q domain.Quadrant, cardName string) (*editor.Session, error) {
	if !q.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}

	opts, err := s.cards.SearchArts(ctx, cardName)
	if err != nil {
		return nil, err
	}

	if _, err := s.transition(ctx, id, func(st editor.State) editor.State {
		return st.SelectCard(q, cardName, opts)
	}); err != nil {
		return nil, err
	}
	return s.loadPending(ctx, id)
}

// SelectArt picks printID from the open dialog.
func (s *EditorService) SelectArt(ctx context.Context, id uuid.UUID, printID string) (*editor.Session, error) {
	_, err := s.store.Update(ctx, id, func(sess *editor.Session) error {
		if sess.State.Dialog == nil {
			return domain.ErrDialogNotOpen
		}
		next := sess.State.SelectArt(printID)
		if next.Dialog != nil {
			return domain.ErrArtNotInDialog
		}
		sess.State = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadPending(ctx, id)
}

func (s *EditorService) CloseDialog(ctx context.Context, id uuid.UUID) (*editor.Session, error) {
	return s.transition(ctx, id, editor.State.CloseDialog)
}

func (s *EditorService) ClearSlot(ctx context.Context, id uuid.UUID, q domain.Quadrant) (*editor.Session, error) {
	if !q.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.ClearSlot(q)
	})
}

func (s *EditorService) SwapQuadrants(ctx context.Context, id uuid.UUID, a, b domain.Quadrant) (*editor.Session, error) {
	if !a.Valid() || !b.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.SwapQuadrants(a, b)
	})
}

func (s *EditorService) Drag(ctx context.Context, id uuid.UUID, q domain.Quadrant, dx, dy float64) (*editor.Session, error) {
	if !q.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}
	return s.panZoom(ctx, id, q, func(st editor.State) editor.State {
		return st.Drag(q, dx, dy)
	})
}

func (s *EditorService) Zoom(ctx context.Context, id uuid.UUID, q domain.Quadrant, px, py, notches float64) (*editor.Session, error) {
	if !q.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}
	return s.panZoom(ctx, id, q, func(st editor.State) editor.State {
		return st.Zoom(q, px, py, notches)
	})
}

// panZoom applies fn only when q has art to move.
func (s *EditorService) panZoom(ctx context.Context, id uuid.UUID, q domain.Quadrant, fn func(editor.State) editor.State) (*editor.Session, error) {
	return s.store.Update(ctx, id, func(sess *editor.Session) error {
		if sess.State.Slots[q].Art == nil {
			return domain.ErrNoArtSelected
		}
		sess.State = fn(sess.State)
		return nil
	})
}

// loadPending measures newly selected art so its view can be fitted.
// Art that fails to load stays selected but undrawn.
func (s *EditorService) loadPending(ctx context.Context, id uuid.UUID) (*editor.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pending := sess.State.PendingLoads()
	if len(pending) == 0 {
		return sess, nil
	}

	type measured struct {
		q    domain.Quadrant
		url  string
		w, h int
	}
	var loaded []measured
	for _, q := range pending {
		url := sess.State.Slots[q].Art.ArtURL
		w, h, err := s.images.Dimensions(ctx, url)
		if err != nil {
			log.WithError(err).WithField("quadrant", q.String()).Warn("art load failed")
			continue
		}
		loaded = append(loaded, measured{q: q, url: url, w: w, h: h})
	}

	return s.transition(ctx, id, func(st editor.State) editor.State {
		for _, m := range loaded {
			st = st.ArtLoaded(m.q, m.url, float64(m.w), float64(m.h))
		}
		return st
	})
}

// ============================================================================
// Logo
// ============================================================================

// Uploaded logos are checked against these before decoding.
const (
	maxLogoPixels = 4096 * 4096
	maxLogoAspect = 8.0
)

// UploadLogo replaces the session's logo with the decoded image data.
func (s *EditorService) UploadLogo(ctx context.Context, id uuid.UUID, data []byte) (*editor.Session, error) {
	if err := checkLogoSize(data); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLogo, err)
	}
	details := logoDetails(img)
	if details == nil {
		return nil, domain.ErrInvalidLogo
	}

	return s.store.Update(ctx, id, func(sess *editor.Session) error {
		sess.Logo = img
		sess.State = sess.State.SetCustomLogo(*details)
		return nil
	})
}

func checkLogoSize(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLogo, err)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		return domain.ErrInvalidLogo
	}
	if w*h > maxLogoPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrInvalidLogo, w, h, maxLogoPixels)
	}
	if aspect := float64(max(w, h)) / float64(min(w, h)); aspect > maxLogoAspect {
		return fmt.Errorf("%w: aspect ratio %.1f exceeds %.0f", domain.ErrInvalidLogo, aspect, maxLogoAspect)
	}
	return nil
}

func (s *EditorService) ClearLogo(ctx context.Context, id uuid.UUID) (*editor.Session, error) {
	return s.store.Update(ctx, id, func(sess *editor.Session) error {
		sess.Logo = nil
		sess.State = sess.State.ClearCustomLogo()
		return nil
	})
}

func (s *EditorService) SetLogoOverrides(ctx context.Context, id uuid.UUID, o layout.LogoOverrides) (*editor.Session, error) {
	return s.transition(ctx, id, func(st editor.State) editor.State {
		return st.SetLogoOverrides(o)
	})
}

// ============================================================================
// Export
// ============================================================================

func (s *EditorService) Export(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.thumbnails.Export(ctx, ThumbnailFromSession(sess))
}

// ThumbnailFromSession snapshots a session for layout or export.
func ThumbnailFromSession(sess *editor.Session) Thumbnail {
	st := sess.State
	t := Thumbnail{
		LeftDeck:      st.LeftDeck,
		RightDeck:     st.RightDeck,
		Mode:          st.Mode,
		StreamDate:    st.StreamDate,
		EventName:     st.EventName,
		LogoOverrides: st.LogoOverrides,
	}
	if st.CustomLogo != nil {
		t.CustomLogo = sess.Logo
	}
	for i, slot := range st.Slots {
		if slot.Art == nil {
			continue
		}
		art := &ThumbnailArt{ArtURL: slot.Art.ArtURL, CardID: slot.CardID}
		if slot.View.Loaded() {
			v := slot.View
			art.View = &v
		}
		t.Art[i] = art
	}
	return t
}

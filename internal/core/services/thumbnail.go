package services

import (
	"context"
	"image"
	"strings"
	"time"
	"unicode"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"deck-thumbnail-service/internal/core/canvas"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// ExportScale maps the 960x540 working canvas to 1280x720 output.
const ExportScale = 1.3334

const fallbackFilename = "thumbnail.png"

// ThumbnailArt is one quadrant's selected art. A nil View is fitted to
// cover the quadrant once the image is loaded; otherwise its position and
// scale are applied to the loaded image and clamped.
type ThumbnailArt struct {
	ArtURL string
	CardID string
	View   *canvas.View
}

// Thumbnail is everything needed to lay out and export one thumbnail.
type Thumbnail struct {
	LeftDeck      string
	RightDeck     string
	Mode          domain.Mode
	StreamDate    string
	EventName     string
	Art           [domain.QuadrantCount]*ThumbnailArt
	CustomLogo    image.Image
	LogoOverrides layout.LogoOverrides
}

// ExportResult is a rendered thumbnail ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ThumbnailService computes layouts and exports rendered thumbnails.
type ThumbnailService struct {
	images      *ImageProxyService
	ledger      *UsageLedgerService
	renderer    ports.ThumbnailRenderer
	measurer    layout.TextMeasurer
	defaultLogo image.Image
	now         func() time.Time
}

// NewThumbnailService creates a new thumbnail service. defaultLogo may be
// nil, in which case thumbnails without a custom logo have none.
func NewThumbnailService(
	images *ImageProxyService,
	ledger *UsageLedgerService,
	renderer ports.ThumbnailRenderer,
	measurer layout.TextMeasurer,
	defaultLogo image.Image,
) *ThumbnailService {
	return &ThumbnailService{
		images:      images,
		ledger:      ledger,
		renderer:    renderer,
		measurer:    measurer,
		defaultLogo: defaultLogo,
		now:         time.Now,
	}
}

// DefaultLogoDetails returns the configured logo's natural size, or nil.
func (s *ThumbnailService) DefaultLogoDetails() *layout.LogoDetails {
	return logoDetails(s.defaultLogo)
}

// Measurer is the text measurer layouts are computed with.
func (s *ThumbnailService) Measurer() layout.TextMeasurer {
	return s.measurer
}

func logoDetails(img image.Image) *layout.LogoDetails {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	return &layout.LogoDetails{NaturalWidth: float64(b.Dx()), NaturalHeight: float64(b.Dy())}
}

// ============================================================================
// Layout
// ============================================================================

// Layout loads t's art and computes its layout. Art that cannot be
// fetched is left out.
func (s *ThumbnailService) Layout(ctx context.Context, t Thumbnail) (layout.Layout, error) {
	l, _, err := s.prepare(ctx, t)
	return l, err
}

func (s *ThumbnailService) prepare(ctx context.Context, t Thumbnail) (layout.Layout, ports.RenderAssets, error) {
	in := layout.Input{
		Width:      layout.DefaultWidth,
		Height:     layout.DefaultHeight,
		LeftDeck:   t.LeftDeck,
		RightDeck:  t.RightDeck,
		Mode:       t.Mode,
		StreamDate: t.StreamDate,
		EventName:  t.EventName,
		Logo:       layout.ChooseLogo(logoDetails(t.CustomLogo), t.LogoOverrides, s.DefaultLogoDetails()),
	}
	if in.Mode == domain.ModeStream {
		in.LeftDeck, in.RightDeck = "", ""
	}

	assets := ports.RenderAssets{Art: make(map[domain.Quadrant]image.Image)}
	switch in.Logo.(type) {
	case layout.CustomLogo:
		assets.Logo = t.CustomLogo
	case layout.DefaultLogo:
		assets.Logo = s.defaultLogo
	}

	var loaded [domain.QuadrantCount]image.Image
	g, gctx := errgroup.WithContext(ctx)
	for i, art := range t.Art {
		if art == nil || art.ArtURL == "" {
			continue
		}
		g.Go(func() error {
			img, err := s.images.Decode(gctx, art.ArtURL)
			if err != nil {
				log.WithError(err).WithField("quadrant", domain.Quadrant(i).String()).Warn("art unavailable, leaving quadrant empty")
				return nil
			}
			loaded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return layout.Layout{}, assets, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, assets, err
	}

	for i, img := range loaded {
		if img == nil {
			continue
		}
		q := domain.Quadrant(i)
		bounds := layout.QuadrantRect(in.Width, in.Height, q)
		b := img.Bounds()

		view := canvas.Fit(bounds, float64(b.Dx()), float64(b.Dy()))
		if v := t.Art[i].View; v != nil && v.Scale > 0 {
			view.X, view.Y, view.Scale = v.X, v.Y, v.Scale
			view = view.Clamp()
		}
		in.Art[i] = &layout.Art{URL: t.Art[i].ArtURL, Dest: view.Rect()}
		assets.Art[q] = img
	}

	return layout.Compute(in, s.measurer), assets, nil
}

// ============================================================================
// Export
// ============================================================================

// Export records deck name and art usage, then renders t at ExportScale.
// Ledger failures are logged and never fail the export.
func (s *ThumbnailService) Export(ctx context.Context, t Thumbnail) (*ExportResult, error) {
	s.recordUsage(ctx, t)

	l, assets, err := s.prepare(ctx, t)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderPNG(ctx, l, assets, ExportScale)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename:    ExportFilename(t.Mode, t.LeftDeck, t.RightDeck, t.StreamDate, s.now()),
		ContentType: "image/png",
		Data:        data,
	}, nil
}

func (s *ThumbnailService) recordUsage(ctx context.Context, t Thumbnail) {
	if t.Mode != domain.ModeStream {
		for _, name := range []string{t.LeftDeck, t.RightDeck} {
			if strings.TrimSpace(name) == "" {
				continue
			}
			_ = s.ledger.RecordDeckName(ctx, name)
		}
	}
	for _, art := range t.Art {
		if art == nil || art.ArtURL == "" || art.CardID == "" {
			continue
		}
		_ = s.ledger.RecordArtUsage(ctx, art.ArtURL, art.CardID)
	}
}

// ExportFilename derives the download name. Stream exports are dated by
// the stream date when it parses as YYYY-MM-DD, else by now; video exports
// are named after both decks.
func ExportFilename(mode domain.Mode, left, right, streamDate string, now time.Time) string {
	if mode == domain.ModeStream {
		date := now
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(streamDate)); err == nil {
			date = d
		}
		return "Livestream-" + date.Format("01-02-06") + ".png"
	}

	l, r := PascalCase(left), PascalCase(right)
	if l == "" && r == "" {
		return fallbackFilename
	}
	return l + "Vs" + r + ".png"
}

// PascalCase joins the letter and digit runs of s, upper-casing the first
// rune of each. Everything else is dropped.
func PascalCase(s string) string {
	var b strings.Builder
	startWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			startWord = true
			continue
		}
		if startWord {
			r = unicode.ToUpper(r)
			startWord = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

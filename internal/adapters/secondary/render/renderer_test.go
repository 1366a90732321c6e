package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"runtime"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

func newFonts(t *testing.T) *Fonts {
	t.Helper()
	f, err := NewFonts("")
	require.NoError(t, err)
	return f
}

func TestFonts_MeasureText(t *testing.T) {
	f := newFonts(t)

	small := f.MeasureText(layout.Font{Size: 24, Bold: true}, "Mono Red")
	large := f.MeasureText(layout.Font{Size: 48, Bold: true}, "Mono Red")

	assert.Greater(t, small, 0.0)
	assert.InDelta(t, 2*small, large, small*0.1)
	assert.Greater(t, f.MeasureText(layout.Font{Size: 24, Bold: true}, "Mono Red Aggro"), small)
	assert.Equal(t, 0.0, f.MeasureText(layout.Font{Size: 24}, ""))
}

func TestFonts_FitsWithRealMeasurer(t *testing.T) {
	f := newFonts(t)
	size := layout.FitFontSize("Azorius Control", 370, 80, layout.DeckFontMin, layout.DeckFontMax, true, f)

	lines := layout.Wrap("Azorius Control", 370, layout.Font{Size: float64(size), Bold: true}, f)
	assert.LessOrEqual(t, layout.WrappedHeight(len(lines), float64(size)), 80.0)
}

func TestFonts_BadPath(t *testing.T) {
	_, err := NewFonts("/nonexistent/font.ttf")
	assert.Error(t, err)
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestRenderer_ExportScale(t *testing.T) {
	fonts := newFonts(t)
	r := NewRenderer(fonts)
	l := layout.Compute(layout.Input{
		Mode:      domain.ModeVideo,
		LeftDeck:  "Mono Red",
		RightDeck: "Azorius Control",
		Logo:      layout.DefaultLogo{Details: layout.LogoDetails{NaturalWidth: 100, NaturalHeight: 100}},
	}, fonts)

	data, err := r.RenderPNG(context.Background(), l, ports.RenderAssets{
		Logo: imaging.New(100, 100, color.NRGBA{R: 255, A: 255}),
	}, 1.3334)
	require.NoError(t, err)

	img := decodePNG(t, data)
	assert.Equal(t, image.Rect(0, 0, 1280, 720), img.Bounds())
}

func TestRenderer_DrawsArtClippedToQuadrant(t *testing.T) {
	r := NewRenderer(newFonts(t))

	var in layout.Input
	// art overhangs the top-left quadrant to the right and bottom
	in.Art[domain.TopLeft] = &layout.Art{URL: "u", Dest: layout.Rect{X: -40, Y: 0, W: 600, H: 300}}
	l := layout.Compute(in, nil)

	green := imaging.New(60, 30, color.NRGBA{G: 255, A: 255})
	data, err := r.RenderPNG(context.Background(), l, ports.RenderAssets{
		Art: map[domain.Quadrant]image.Image{domain.TopLeft: green},
	}, 1)
	require.NoError(t, err)

	img := decodePNG(t, data)
	_, g, _, _ := img.At(200, 100).RGBA()
	assert.Greater(t, g>>8, uint32(200), "inside quadrant is art")

	_, g, _, _ = img.At(700, 100).RGBA()
	assert.Less(t, g>>8, uint32(50), "other quadrant stays clear")
	_, g, _, _ = img.At(200, 400).RGBA()
	assert.Less(t, g>>8, uint32(50), "below the quadrant stays clear")
}

func TestRenderer_WideLogoResizesOnlyVisiblePart(t *testing.T) {
	fonts := newFonts(t)
	r := NewRenderer(fonts)
	l := layout.Compute(layout.Input{
		Mode: domain.ModeVideo,
		Logo: layout.CustomLogo{Details: layout.LogoDetails{NaturalWidth: 2000, NaturalHeight: 1}},
	}, fonts)
	require.NotNil(t, l.Logo)
	require.Greater(t, l.Logo.W, 100*l.Width)

	red := imaging.New(2000, 1, color.NRGBA{R: 255, A: 255})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	data, err := r.RenderPNG(context.Background(), l, ports.RenderAssets{Logo: red}, 1.3334)
	runtime.ReadMemStats(&after)
	require.NoError(t, err)

	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20))

	img := decodePNG(t, data)
	y := int((l.Logo.Y + l.Logo.H/2) * 1.3334)
	red8, _, _, _ := img.At(200, y).RGBA()
	assert.Greater(t, red8>>8, uint32(200), "visible slice of the logo is drawn")
}

func TestRenderer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(newFonts(t)).RenderPNG(ctx, layout.Compute(layout.Input{}, nil), ports.RenderAssets{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#ff8000")
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 128.0/255, g, 1e-9)
	assert.InDelta(t, 0.0, b, 1e-9)

	for _, bad := range []string{"", "ff8000", "#ff80", "#zzzzzz"} {
		r, g, b := hexRGB(bad)
		assert.Equal(t, [3]float64{0, 0, 0}, [3]float64{r, g, b}, bad)
	}
}

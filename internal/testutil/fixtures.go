package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"unicode/utf8"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
)

// StubMeasurer gives every rune half an em so layouts are deterministic
// without fonts.
type StubMeasurer struct{}

func (StubMeasurer) MeasureText(font layout.Font, text string) float64 {
	return font.Size * 0.5 * float64(utf8.RuneCountInString(text))
}

// PNGBlob encodes a solid w x h PNG.
func PNGBlob(w, h int, c color.Color) *domain.ImageBlob {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return &domain.ImageBlob{Data: buf.Bytes(), ContentType: "image/png"}
}

// SolRingPrints are two distinct Sol Ring art crops.
func SolRingPrints() []domain.CardArtOption {
	return []domain.CardArtOption{
		{ArtURL: "https://cards.scryfall.io/art_crop/front/a/sol-ring-c21.jpg", SetCode: "c21", PrintID: "p-c21", CardID: "sol-ring", Artist: "Mike Bierek"},
		{ArtURL: "https://cards.scryfall.io/art_crop/front/b/sol-ring-lea.jpg", SetCode: "lea", PrintID: "p-lea", CardID: "sol-ring", Artist: "Mark Tedin"},
	}
}

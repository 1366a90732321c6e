// Package render rasterizes thumbnail layouts with gg and measures text
// with the same faces it draws with.
package render

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"deck-thumbnail-service/internal/core/layout"
)

type faceKey struct {
	size float64
	bold bool
}

// Fonts caches opentype faces per size and weight. It implements
// layout.TextMeasurer.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFonts loads the Go fonts. A non-empty boldPath replaces the bold face,
// which is the one used for every thumbnail text run.
func NewFonts(boldPath string) (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	boldTTF := gobold.TTF
	if boldPath != "" {
		if boldTTF, err = os.ReadFile(boldPath); err != nil {
			return nil, fmt.Errorf("read font %s: %w", boldPath, err)
		}
	}
	bold, err := opentype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// withFace runs fn with the face for f. Faces are not safe for concurrent
// use, so fn runs under the cache lock.
func (f *Fonts) withFace(ft layout.Font, fn func(font.Face)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{size: ft.Size, bold: ft.Bold}
	face, ok := f.faces[key]
	if !ok {
		src := f.regular
		if ft.Bold {
			src = f.bold
		}
		var err error
		face, err = opentype.NewFace(src, &opentype.FaceOptions{
			Size:    ft.Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("create face size %v: %w", ft.Size, err)
		}
		f.faces[key] = face
	}
	fn(face)
	return nil
}

// MeasureText returns the advance width of text in pixels. It returns 0
// when no face can be built for ft.
func (f *Fonts) MeasureText(ft layout.Font, text string) float64 {
	var width float64
	err := f.withFace(ft, func(face font.Face) {
		width = float64(font.MeasureString(face, text)) / 64
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"size": ft.Size,
			"bold": ft.Bold,
		}).Error("measure text failed")
	}
	return width
}

package layout

import (
	"strings"
	"unicode/utf8"
)

// Font identifies the face used to measure and draw a text run.
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
}

// TextMeasurer returns the rendered width in pixels of text drawn with font.
type TextMeasurer interface {
	MeasureText(font Font, text string) float64
}

// LineHeight is the multiplier applied to a font size to get its line advance.
const LineHeight = 1.2

// Wrap greedily breaks text into lines no wider than maxWidth. A single word
// wider than maxWidth is kept whole on its own line.
func Wrap(text string, maxWidth float64, font Font, m TextMeasurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if m == nil {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if m.MeasureText(font, candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// WrappedHeight is the block height of lines at size.
func WrappedHeight(lines int, size float64) float64 {
	return float64(lines) * size * LineHeight
}

// FitFontSize finds the largest integer size in [minSize, maxSize] whose
// wrapped height fits maxHeight. It returns minSize when nothing fits and
// maxSize when no measurer is available.
func FitFontSize(text string, maxWidth, maxHeight float64, minSize, maxSize int, bold bool, m TextMeasurer) int {
	if m == nil {
		return maxSize
	}
	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}

	fits := func(size int) bool {
		font := Font{Size: float64(size), Bold: bold}
		lines := Wrap(text, maxWidth, font, m)
		return WrappedHeight(len(lines), font.Size) <= maxHeight
	}

	best := minSize
	lo, hi := minSize, maxSize
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if fits(mid) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// EventFontSize picks the event-name size from its length so long names
// shrink instead of overflowing the logo width.
func EventFontSize(name string) float64 {
	switch n := utf8.RuneCountInString(name); {
	case n <= 10:
		return 36
	case n <= 16:
		return 30
	case n <= 24:
		return 24
	default:
		return 18
	}
}

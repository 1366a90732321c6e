package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMeasurer gives every rune half an em.
type stubMeasurer struct{}

func (stubMeasurer) MeasureText(font Font, text string) float64 {
	return font.Size * 0.5 * float64(utf8.RuneCountInString(text))
}

var fitSamples = []string{
	"Mono Red",
	"Azorius Control",
	"Golgari Midrange Food Value",
	"The Extremely Long Deck Name That Goes On And On",
	"Supercalifragilisticexpialidocious",
	"a b c d e f g h i j k l m n o p q r s t u v w x y z",
	"Izzet",
}

func TestWrap_Greedy(t *testing.T) {
	font := Font{Size: 10}
	// 5px per rune, 50px fits 10 runes
	lines := Wrap("aaa bbb ccc ddd", 50, font, stubMeasurer{})
	assert.Equal(t, []string{"aaa bbb", "ccc ddd"}, lines)
}

func TestWrap_LongWordKeptWhole(t *testing.T) {
	font := Font{Size: 10}
	lines := Wrap("hi Supercalifragilistic yo", 50, font, stubMeasurer{})
	assert.Equal(t, []string{"hi", "Supercalifragilistic", "yo"}, lines)
}

func TestWrap_Empty(t *testing.T) {
	assert.Nil(t, Wrap("   ", 100, Font{Size: 10}, stubMeasurer{}))
}

func TestWrap_Idempotent(t *testing.T) {
	for _, text := range fitSamples {
		for _, width := range []float64{60, 120, 250, 370} {
			font := Font{Size: 24, Bold: true}
			lines := Wrap(text, width, font, stubMeasurer{})

			again := Wrap(strings.Join(lines, " "), width, font, stubMeasurer{})
			assert.Equal(t, lines, again, "text %q width %v", text, width)

			for _, line := range lines {
				assert.Equal(t, []string{line}, Wrap(line, width, font, stubMeasurer{}))
			}
		}
	}
}

func TestFitFontSize_LargestThatFits(t *testing.T) {
	m := stubMeasurer{}
	const maxWidth, maxHeight = 370.0, 80.0

	for _, text := range fitSamples {
		size := FitFontSize(text, maxWidth, maxHeight, DeckFontMin, DeckFontMax, true, m)
		require.GreaterOrEqual(t, size, DeckFontMin)
		require.LessOrEqual(t, size, DeckFontMax)

		fits := func(s int) bool {
			lines := Wrap(text, maxWidth, Font{Size: float64(s), Bold: true}, m)
			return WrappedHeight(len(lines), float64(s)) <= maxHeight
		}
		if size == DeckFontMin && !fits(size) {
			continue
		}
		assert.True(t, fits(size), "text %q size %d should fit", text, size)
		if size < DeckFontMax {
			assert.False(t, fits(size+1), "text %q size %d should not fit", text, size+1)
		}
	}
}

func TestFitFontSize_ShortNameGetsMax(t *testing.T) {
	assert.Equal(t, 48, FitFontSize("Mono Red", 370, 80, 24, 48, true, stubMeasurer{}))
}

func TestFitFontSize_NothingFitsReturnsMin(t *testing.T) {
	assert.Equal(t, 24, FitFontSize("Mono Red", 370, 10, 24, 48, true, stubMeasurer{}))
}

func TestFitFontSize_NilMeasurerReturnsMax(t *testing.T) {
	assert.Equal(t, 48, FitFontSize("anything at all", 10, 10, 24, 48, true, nil))
}

func TestEventFontSize(t *testing.T) {
	cases := []struct {
		name string
		want float64
	}{
		{"", 36},
		{"FNM", 36},
		{"0123456789", 36},
		{"01234567890", 30},
		{"0123456789abcdef", 30},
		{"0123456789abcdefg", 24},
		{"0123456789abcdefghijklmn", 24},
		{"0123456789abcdefghijklmno", 18},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EventFontSize(tc.name), tc.name)
	}
}

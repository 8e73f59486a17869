package geometry

import (
	"unicode/utf8"

	"github.com/sunjay/kale"
)

// TextMeasurer is the font layer consumed by the compiler. It returns the
// size of the box a Text primitive occupies so the path can advance to its
// bottom-right corner.
type TextMeasurer interface {
	MeasureText(t *kale.Text) (width, height float64)
}

// EstimateMeasurer sizes text without font data: every rune advances by
// Advance times the font size. It is the compiler default when no font
// layer is configured.
type EstimateMeasurer struct {
	// Advance is the per-rune advance as a fraction of the font size.
	// Zero means 0.6.
	Advance float64
}

// MeasureText implements TextMeasurer.
func (m EstimateMeasurer) MeasureText(t *kale.Text) (width, height float64) {
	adv := m.Advance
	if adv == 0 {
		adv = 0.6
	}
	return float64(utf8.RuneCountInString(t.Content)) * adv * t.FontSize, t.FontSize
}

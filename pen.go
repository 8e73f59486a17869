package kale

// Pen is the stroke style applied to subsequent path primitives.
//
// A disabled pen still moves the path; primitives drawn with it produce no
// visible stroke.
type Pen struct {
	Enabled     bool
	Color       RGBA
	StrokeWidth float64
}

// DefaultPen returns the pen used by a surface before any SetPen:
// enabled, opaque black, one unit wide.
func DefaultPen() Pen {
	return Pen{
		Enabled:     true,
		Color:       Black,
		StrokeWidth: 1,
	}
}

// Visible reports whether strokes drawn with the pen leave a mark.
func (p Pen) Visible() bool {
	return p.Enabled && p.StrokeWidth > 0 && p.Color.A > 0
}

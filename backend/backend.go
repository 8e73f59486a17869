package backend

import (
	"errors"
	"io"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/render"
)

// Common backend errors.
var (
	// ErrNotRegistered is returned when a requested output is not registered.
	ErrNotRegistered = errors.New("backend: not registered")

	// ErrInvalidSize is returned for non-positive frame dimensions.
	ErrInvalidSize = errors.New("backend: invalid frame size")

	// ErrNoFrame is returned by Encode before a frame has been ended.
	ErrNoFrame = errors.New("backend: no finished frame")
)

// Output is a render.Backend whose finished frame can be written out.
type Output interface {
	render.Backend

	// Encode writes the most recently ended frame to w.
	Encode(w io.Writer) error
}

// FontSource provides font data by ID. *text.Measurer implements it, so
// outputs draw text with the font it was measured with.
type FontSource interface {
	FontData(id kale.FontID) []byte
}

// Config describes the frame an Output draws.
type Config struct {
	// Width and Height are the frame size in device units (pixels for
	// raster output, points for PDF).
	Width, Height int
	// Scale is device units per surface unit. Zero means 1.
	Scale float64
	// Fonts supplies text fonts. Nil means Go Regular for every font.
	Fonts FontSource
}

// Validate checks the frame size.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	return nil
}

// Transform returns the mapping from y-up surface coordinates to y-down
// device coordinates, with the surface origin at the frame center.
func (c Config) Transform() Transform {
	s := c.Scale
	if s == 0 {
		s = 1
	}
	return Transform{
		Scale: s,
		OX:    float64(c.Width) / 2,
		OY:    float64(c.Height) / 2,
	}
}

// Transform maps surface points to device points.
type Transform struct {
	Scale  float64
	OX, OY float64
}

// Apply maps p to device coordinates.
func (t Transform) Apply(p kale.Point) (x, y float64) {
	return t.OX + p.X*t.Scale, t.OY - p.Y*t.Scale
}

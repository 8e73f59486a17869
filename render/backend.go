package render

import (
	"github.com/sunjay/kale"
	"github.com/sunjay/kale/geometry"
)

// Backend draws compiled geometry into some output.
//
// The Composer calls BeginFrame once, then FillPolygon and StrokeSegment
// in draw order, then EndFrame. Geometry is in y-up surface coordinates;
// mapping to device space is up to the backend. A backend must not retain
// the Points slices it is given past EndFrame.
type Backend interface {
	// BeginFrame starts a frame cleared to bg.
	BeginFrame(bg kale.RGBA) error

	// FillPolygon fills the closed polygon f.Points with f.Color.
	// f.Pending is set for the outline of a fill that has not been ended.
	FillPolygon(f geometry.Fill) error

	// StrokeSegment draws one line, arc, text or image segment with s.Pen.
	StrokeSegment(s geometry.Segment) error

	// EndFrame finishes the frame, flushing any buffered output.
	EndFrame() error
}

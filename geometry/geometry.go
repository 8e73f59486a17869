package geometry

import "github.com/sunjay/kale"

// SegmentKind identifies the shape of a stroke segment.
type SegmentKind uint8

const (
	SegmentLine  SegmentKind = iota // Straight line From -> To
	SegmentArc                      // Circular arc around Center
	SegmentText                     // Text laid out in Box
	SegmentImage                    // Image placed in Box
)

// segmentKindNames maps SegmentKind values to their string representation.
var segmentKindNames = [...]string{
	SegmentLine:  "Line",
	SegmentArc:   "Arc",
	SegmentText:  "Text",
	SegmentImage: "Image",
}

// String returns the string representation of a SegmentKind.
func (k SegmentKind) String() string {
	if int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return "Unknown"
}

// Segment is one visible piece of a surface's path.
type Segment struct {
	Kind SegmentKind
	// Index is the log index of the primitive that produced the segment.
	Index int
	// Pen is the pen active when the segment was drawn.
	Pen kale.Pen

	From, To kale.Point
	// Points approximates the segment as a polyline from From to To.
	// Lines have two points; arcs are flattened to the compiler tolerance.
	// Text and image segments have none.
	Points []kale.Point

	// Arc parameters, valid for SegmentArc.
	Center     kale.Point
	Radius     float64
	StartAngle kale.Radians
	Sweep      kale.Radians

	// Box holds the bottom-left, bottom-right, top-right and top-left
	// corners of a text or image segment.
	Box   [4]kale.Point
	Text  *kale.Text
	Image *kale.Image
}

// Fill is a closed polygon filled with a solid color. The last point is
// implicitly joined to the first by a straight edge.
type Fill struct {
	// Index is the log index of the first primitive in the fill region.
	Index  int
	Color  kale.RGBA
	Points []kale.Point
	// Pending marks the outline of a fill that has been begun but not
	// ended yet.
	Pending bool
}

// Geometry is the compiled form of one surface.
type Geometry struct {
	// Strokes are in log order.
	Strokes []Segment
	// Fills are committed fill polygons in the order they were ended.
	Fills []Fill
	// Pending is the outline of the open fill region, if any.
	Pending *Fill

	// End is the path position after the last primitive.
	End kale.Point
	// Pen is the pen in effect after the last primitive.
	Pen kale.Pen
	// Bounds covers every stroke, fill, text and image.
	Bounds kale.Rect
	// Version is the history version the geometry was compiled from.
	Version uint64
}

// Empty returns geometry with nothing to draw.
func Empty() *Geometry {
	return &Geometry{
		Pen:    kale.DefaultPen(),
		Bounds: kale.EmptyRect(),
	}
}

// IsEmpty reports whether there is nothing to draw.
func (g *Geometry) IsEmpty() bool {
	return len(g.Strokes) == 0 && len(g.Fills) == 0 && g.Pending == nil
}

package kale

// Kind identifies the type of a draw primitive.
type Kind uint8

const (
	KindSetPen Kind = iota // Replace the current pen
	KindLineTo             // Straight line to a point
	KindArc                // Circular arc relative to a heading
	KindText               // Text anchored at its bottom edge
	KindImage              // Pixel buffer anchored at its bottom edge
)

// kindNames maps Kind values to their string representation.
var kindNames = [...]string{
	KindSetPen: "SetPen",
	KindLineTo: "LineTo",
	KindArc:    "Arc",
	KindText:   "Text",
	KindImage:  "Image",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Primitive is a single entry of a surface display list.
//
// The set of primitives is closed: SetPen, LineTo, Arc, Text and Image are
// the only implementations. Each primitive is evaluated against the path
// position and pen left by its predecessor.
type Primitive interface {
	// Kind returns the Kind for this primitive.
	Kind() Kind

	isPrimitive()
}

// SetPen replaces the pen used by every following primitive.
// Undo and redo apply to it like any other primitive.
type SetPen struct {
	Pen Pen
}

// Kind implements Primitive.
func (SetPen) Kind() Kind { return KindSetPen }

func (SetPen) isPrimitive() {}

// LineTo draws a line from the current position to Point.
// With a disabled pen it only moves the path.
type LineTo struct {
	Point Point
}

// Kind implements Primitive.
func (LineTo) Kind() Kind { return KindLineTo }

func (LineTo) isPrimitive() {}

// Arc draws a circular arc starting at the current position.
//
// Heading is the direction of travel at the start of the arc. The center
// lies Radius units to the left of the heading; a positive Radius turns
// counter-clockwise and a negative one clockwise. Extent is the swept
// angle; a negative Extent draws the arc backwards. With a disabled pen it
// only moves the path.
type Arc struct {
	Heading Radians
	Radius  float64
	Extent  Radians
}

// Kind implements Primitive.
func (Arc) Kind() Kind { return KindArc }

func (Arc) isPrimitive() {}

// Align selects which point of the bottom edge of a text or image Start
// refers to.
type Align uint8

const (
	AlignLeft   Align = iota // Start is the bottom-left corner
	AlignCenter              // Start is the bottom-center
	AlignRight               // Start is the bottom-right corner
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Offset returns the horizontal offset of the left edge of a box of the
// given width from its anchor.
func (a Align) Offset(width float64) float64 {
	switch a {
	case AlignCenter:
		return -width / 2
	case AlignRight:
		return -width
	default:
		return 0
	}
}

// FontID identifies a font known to the text layer.
type FontID uint32

// Text draws a string with the current pen.
//
// The path moves to the bottom-right corner of the drawn text as if a line
// had been drawn there. With a disabled pen nothing is drawn but the path
// still moves.
type Text struct {
	Font FontID
	// Content is the string to render.
	Content string
	// FontSize is the vertical size of the font.
	FontSize float64
	// Start is the anchor point on the bottom edge of the text.
	Start Point
	Align Align
	// Angle rotates the text box around Start.
	Angle Radians
}

// Kind implements Primitive.
func (*Text) Kind() Kind { return KindText }

func (*Text) isPrimitive() {}

// Image draws a pixel buffer.
//
// The path moves to the bottom-right corner of the drawn image as if a line
// had been drawn there. With a disabled pen nothing is drawn but the path
// still moves.
type Image struct {
	// Pixels holds Width*Height colors in row-major order, top row first.
	// The length is not validated by the display list.
	Pixels []RGBA
	Width  int
	Height int
	// Start is the anchor point on the bottom edge of the image.
	Start Point
	Align Align
	// Angle rotates the image box around Start.
	Angle Radians
}

// Kind implements Primitive.
func (*Image) Kind() Kind { return KindImage }

func (*Image) isPrimitive() {}

// At returns the pixel at column x, row y (row 0 is the top row).
// Out-of-range coordinates return Transparent.
func (img *Image) At(x, y int) RGBA {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return Transparent
	}
	i := y*img.Width + x
	if i >= len(img.Pixels) {
		return Transparent
	}
	return img.Pixels[i]
}

// Box returns the corners of a width x height box anchored at start with
// the given alignment and rotation, in the order bottom-left, bottom-right,
// top-right, top-left.
func Box(start Point, align Align, angle Radians, width, height float64) [4]Point {
	left := align.Offset(width)
	corners := [4]Point{
		{X: left, Y: 0},
		{X: left + width, Y: 0},
		{X: left + width, Y: height},
		{X: left, Y: height},
	}
	for i, c := range corners {
		corners[i] = start.Add(c.Rotate(angle))
	}
	return corners
}

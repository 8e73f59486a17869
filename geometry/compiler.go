package geometry

import (
	"context"
	"log/slog"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/displaylist"
)

// Snapshot is the read-only view of a surface history the compiler needs.
// *displaylist.History implements it.
type Snapshot interface {
	Log() []kale.Primitive
	BasePen() kale.Pen
	OpenFill() (displaylist.FillRegion, bool)
	Fills() []displaylist.FillRegion
	Version() uint64
}

// Compiler turns surface histories into Geometry.
//
// A Compiler holds only configuration and may be shared by caches.
type Compiler struct {
	opts options
}

// NewCompiler creates a compiler.
func NewCompiler(opts ...Option) *Compiler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Compiler{opts: o}
}

// Tolerance returns the arc flattening tolerance.
func (c *Compiler) Tolerance() float64 { return c.opts.tolerance }

// walker holds the state of one compilation.
type walker struct {
	c   *Compiler
	g   *Geometry
	pos kale.Point
	pen kale.Pen

	// path is every position visited, starting at the origin.
	path []kale.Point
	// marks[i] is the index in path of the position before log entry i;
	// marks[len(log)] is the final position.
	marks []int
}

// Compile builds the geometry of one surface.
//
// The walk starts at the origin with the history's base pen. SetPen
// changes the pen for the primitives after it. Every other primitive moves
// the path to its end point whether or not the pen is enabled, and emits
// segments only when it is. Fill polygons are the positions visited by the
// primitives of their region, starting from the position the region began
// at. A committed fill detached from the log is replayed from its own
// copy of the primitives, so later edits leave its outline unchanged.
func (c *Compiler) Compile(s Snapshot) *Geometry {
	entries := s.Log()
	w := &walker{
		c: c,
		g: &Geometry{
			Bounds:  kale.EmptyRect(),
			Version: s.Version(),
		},
		pen:   s.BasePen(),
		path:  make([]kale.Point, 1, len(entries)+1),
		marks: make([]int, 0, len(entries)+1),
	}

	for i, p := range entries {
		w.marks = append(w.marks, len(w.path)-1)
		w.step(i, p)
	}
	w.marks = append(w.marks, len(w.path)-1)

	n := len(entries)
	for _, r := range s.Fills() {
		src := w
		if r.Frozen() {
			src = c.replay(r.Path)
		}
		end := min(r.End, len(src.marks)-1)
		if r.Start < 0 || end <= r.Start {
			continue
		}
		w.g.Fills = append(w.g.Fills, w.fill(src, r.Start, end, r.Color, false))
	}
	if r, ok := s.OpenFill(); ok && r.Start >= 0 && r.Start <= n {
		f := w.fill(w, r.Start, n, r.Color, true)
		w.g.Pending = &f
	}

	w.g.End = w.pos
	w.g.Pen = w.pen

	if l := kale.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("geometry: compiled",
			slog.Int("primitives", n),
			slog.Int("strokes", len(w.g.Strokes)),
			slog.Int("fills", len(w.g.Fills)),
			slog.Bool("pending", w.g.Pending != nil))
	}
	return w.g
}

// replay walks prims with a disabled pen and returns the walker, whose
// path and marks describe the positions those primitives visit.
func (c *Compiler) replay(prims []kale.Primitive) *walker {
	w := &walker{
		c:     c,
		g:     &Geometry{Bounds: kale.EmptyRect()},
		path:  make([]kale.Point, 1, len(prims)+1),
		marks: make([]int, 0, len(prims)+1),
	}
	for i, p := range prims {
		w.marks = append(w.marks, len(w.path)-1)
		w.step(i, p)
	}
	w.marks = append(w.marks, len(w.path)-1)
	return w
}

// step evaluates log entry i. Nil primitives are skipped.
func (w *walker) step(i int, p kale.Primitive) {
	switch p := p.(type) {
	case kale.SetPen:
		w.pen = p.Pen
	case kale.LineTo:
		w.lineTo(i, p.Point)
	case kale.Arc:
		w.arc(i, p)
	case *kale.Text:
		if p == nil {
			return
		}
		width, height := w.c.opts.measurer.MeasureText(p)
		w.boxed(i, SegmentText, kale.Box(p.Start, p.Align, p.Angle, width, height), p, nil)
	case *kale.Image:
		if p == nil {
			return
		}
		box := kale.Box(p.Start, p.Align, p.Angle, float64(p.Width), float64(p.Height))
		w.boxed(i, SegmentImage, box, nil, p)
	}
}

func (w *walker) lineTo(i int, to kale.Point) {
	from := w.pos
	w.moveTo(to)
	if !w.pen.Enabled {
		return
	}
	w.stroke(Segment{
		Kind:   SegmentLine,
		Index:  i,
		Pen:    w.pen,
		From:   from,
		To:     to,
		Points: []kale.Point{from, to},
	})
}

func (w *walker) arc(i int, a kale.Arc) {
	from := w.pos
	center, radius, start, sweep, end := arcShape(from, a)
	pts := flattenArc(center, radius, start, sweep, end, w.c.opts.tolerance)
	w.path = append(w.path, pts...)
	w.pos = end
	if !w.pen.Enabled {
		return
	}
	line := make([]kale.Point, 0, len(pts)+1)
	line = append(line, from)
	line = append(line, pts...)
	w.stroke(Segment{
		Kind:       SegmentArc,
		Index:      i,
		Pen:        w.pen,
		From:       from,
		To:         end,
		Points:     line,
		Center:     center,
		Radius:     radius,
		StartAngle: start,
		Sweep:      sweep,
	})
}

// boxed handles text and image primitives: the path runs to the
// bottom-right corner of the box, and an enabled pen draws both that line
// and the content.
func (w *walker) boxed(i int, kind SegmentKind, box [4]kale.Point, t *kale.Text, img *kale.Image) {
	from := w.pos
	corner := box[1]
	w.moveTo(corner)
	if !w.pen.Enabled {
		return
	}
	w.stroke(Segment{
		Kind:   SegmentLine,
		Index:  i,
		Pen:    w.pen,
		From:   from,
		To:     corner,
		Points: []kale.Point{from, corner},
	})
	w.g.Strokes = append(w.g.Strokes, Segment{
		Kind:  kind,
		Index: i,
		Pen:   w.pen,
		From:  box[0],
		To:    corner,
		Box:   box,
		Text:  t,
		Image: img,
	})
	for _, p := range box {
		w.g.Bounds = w.g.Bounds.UnionPoint(p)
	}
}

func (w *walker) moveTo(p kale.Point) {
	w.path = append(w.path, p)
	w.pos = p
}

func (w *walker) stroke(s Segment) {
	w.g.Strokes = append(w.g.Strokes, s)
	half := s.Pen.StrokeWidth / 2
	for _, p := range s.Points {
		w.g.Bounds = w.g.Bounds.
			UnionPoint(kale.Pt(p.X-half, p.Y-half)).
			UnionPoint(kale.Pt(p.X+half, p.Y+half))
	}
}

// fill builds the polygon for entries [start, end) of the walk src.
func (w *walker) fill(src *walker, start, end int, color kale.RGBA, pending bool) Fill {
	pts := src.path[src.marks[start] : src.marks[end]+1]
	f := Fill{
		Index:   start,
		Color:   color,
		Points:  append([]kale.Point(nil), pts...),
		Pending: pending,
	}
	for _, p := range f.Points {
		w.g.Bounds = w.g.Bounds.UnionPoint(p)
	}
	return f
}

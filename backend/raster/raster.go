package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/backend"
	"github.com/sunjay/kale/geometry"
)

// Name is the registry name of the raster output.
const Name = "png"

func init() {
	backend.Register(Name, func(cfg backend.Config) (backend.Output, error) {
		return New(cfg)
	})
}

// Backend rasterizes geometry into an RGBA image.
// It is not safe for concurrent use.
type Backend struct {
	img   *image.RGBA
	xf    backend.Transform
	fonts *fontCache

	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	// pendingAlpha scales the alpha of open fill outlines.
	pendingAlpha float64
	interp       draw.Interpolator

	inFrame bool
	ended   bool
}

// New creates a raster backend for cfg.
func New(cfg backend.Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	scanner := rasterx.NewScannerGV(cfg.Width, cfg.Height, img, img.Bounds())
	return &Backend{
		img:          img,
		xf:           cfg.Transform(),
		fonts:        newFontCache(cfg.Fonts),
		scanner:      scanner,
		filler:       rasterx.NewFiller(cfg.Width, cfg.Height, scanner),
		dasher:       rasterx.NewDasher(cfg.Width, cfg.Height, scanner),
		pendingAlpha: o.pendingAlpha,
		interp:       o.interp,
	}, nil
}

// Image returns the frame buffer. It is overwritten by the next frame.
func (b *Backend) Image() *image.RGBA { return b.img }

func (b *Backend) device(p kale.Point) fixed.Point26_6 {
	x, y := b.xf.Apply(p)
	return rasterx.ToFixedP(x, y)
}

func (b *Backend) deviceF(p kale.Point) (float64, float64) {
	return b.xf.Apply(p)
}

// BeginFrame implements render.Backend.
func (b *Backend) BeginFrame(bg kale.RGBA) error {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(bg.Color()), image.Point{}, draw.Src)
	b.inFrame = true
	b.ended = false
	return nil
}

// FillPolygon implements render.Backend with the non-zero winding rule.
func (b *Backend) FillPolygon(f geometry.Fill) error {
	if !b.inFrame {
		return errNoFrame
	}
	if len(f.Points) < 3 {
		return nil
	}
	c := f.Color
	if f.Pending {
		c.A *= b.pendingAlpha
	}

	b.filler.Clear()
	b.filler.SetWinding(true)
	b.filler.SetColor(c.Color())
	b.filler.Start(b.device(f.Points[0]))
	for _, p := range f.Points[1:] {
		b.filler.Line(b.device(p))
	}
	b.filler.Stop(true)
	b.filler.Draw()
	return nil
}

// StrokeSegment implements render.Backend.
func (b *Backend) StrokeSegment(s geometry.Segment) error {
	if !b.inFrame {
		return errNoFrame
	}
	switch s.Kind {
	case geometry.SegmentLine, geometry.SegmentArc:
		b.stroke(s)
		return nil
	case geometry.SegmentText:
		return b.drawText(s)
	case geometry.SegmentImage:
		b.drawImage(s)
		return nil
	default:
		return fmt.Errorf("raster: unknown segment kind %v", s.Kind)
	}
}

func (b *Backend) stroke(s geometry.Segment) {
	w := s.Pen.StrokeWidth * b.xf.Scale
	if w <= 0 || len(s.Points) < 2 {
		return
	}
	b.dasher.Clear()
	b.dasher.SetStroke(fixed.Int26_6(w*64), 4*64, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	b.dasher.SetColor(s.Pen.Color.Color())
	b.dasher.Start(b.device(s.Points[0]))
	for _, p := range s.Points[1:] {
		b.dasher.Line(b.device(p))
	}
	b.dasher.Stop(false)
	b.dasher.Draw()
}

// boxTransform returns the affine map from a w x h source image, row 0 on
// top, onto the device-space quad of box.
func (b *Backend) boxTransform(box [4]kale.Point, w, h int) f64.Aff3 {
	blx, bly := b.deviceF(box[0])
	trx, try := b.deviceF(box[2])
	tlx, tly := b.deviceF(box[3])
	ux, uy := (trx-tlx)/float64(w), (try-tly)/float64(w)
	vx, vy := (blx-tlx)/float64(h), (bly-tly)/float64(h)
	return f64.Aff3{
		ux, vx, tlx,
		uy, vy, tly,
	}
}

func (b *Backend) drawImage(s geometry.Segment) {
	img := s.Image
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	src := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			src.SetNRGBA(x, y, img.At(x, y).NRGBA())
		}
	}
	b.interp.Transform(b.img, b.boxTransform(s.Box, img.Width, img.Height), src, src.Bounds(), draw.Over, nil)
}

// drawText renders the string unrotated into a scratch image the size of
// its box in device pixels, then maps that image onto the box.
func (b *Backend) drawText(s geometry.Segment) error {
	t := s.Text
	if t == nil || t.Content == "" || t.FontSize <= 0 {
		return nil
	}
	bw := s.Box[1].Distance(s.Box[0]) * b.xf.Scale
	bh := s.Box[3].Distance(s.Box[0]) * b.xf.Scale
	w, h := int(math.Ceil(bw)), int(math.Ceil(bh))
	if w <= 0 || h <= 0 {
		return nil
	}

	face, err := b.fonts.face(t.Font, t.FontSize*b.xf.Scale)
	if err != nil {
		return err
	}
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	drawString(scratch, face, t.Content, s.Pen.Color)

	b.interp.Transform(b.img, b.boxTransform(s.Box, w, h), scratch, scratch.Bounds(), draw.Over, nil)
	return nil
}

// EndFrame implements render.Backend.
func (b *Backend) EndFrame() error {
	if !b.inFrame {
		return errNoFrame
	}
	b.inFrame = false
	b.ended = true
	return nil
}

// Encode writes the last finished frame as PNG.
func (b *Backend) Encode(w io.Writer) error {
	if !b.ended {
		return backend.ErrNoFrame
	}
	if err := png.Encode(w, b.img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

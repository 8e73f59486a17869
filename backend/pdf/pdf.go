package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/backend"
	"github.com/sunjay/kale/geometry"
)

// Name is the registry name of the PDF output.
const Name = "pdf"

func init() {
	backend.Register(Name, func(cfg backend.Config) (backend.Output, error) {
		return New(cfg)
	})
}

// Backend draws frames into a PDF document.
// It is not safe for concurrent use.
type Backend struct {
	cfg  backend.Config
	xf   backend.Transform
	opts options

	doc     *gofpdf.Fpdf
	fonts   map[kale.FontID]string
	images  int
	inFrame bool
	pages   int
}

// New creates a PDF backend for cfg.
func New(cfg backend.Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{cfg: cfg, xf: cfg.Transform(), opts: o}, nil
}

// Pages returns the number of finished pages in the current document.
func (b *Backend) Pages() int { return b.pages }

func (b *Backend) newDocument() {
	b.doc = gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(b.cfg.Width), Ht: float64(b.cfg.Height)},
	})
	b.doc.SetCreator("kale", true)
	if b.opts.title != "" {
		b.doc.SetTitle(b.opts.title, true)
	}
	b.doc.SetAutoPageBreak(false, 0)
	b.doc.SetMargins(0, 0, 0)
	b.fonts = make(map[kale.FontID]string)
	b.images = 0
	b.pages = 0
}

func (b *Backend) device(p kale.Point) gofpdf.PointType {
	x, y := b.xf.Apply(p)
	return gofpdf.PointType{X: x, Y: y}
}

func rgb(c kale.RGBA) (int, int, int) {
	n := c.NRGBA()
	return int(n.R), int(n.G), int(n.B)
}

// BeginFrame implements render.Backend. It adds a page painted with bg.
func (b *Backend) BeginFrame(bg kale.RGBA) error {
	if b.doc == nil {
		b.newDocument()
	}
	b.doc.AddPage()
	if bg.A > 0 {
		b.doc.SetAlpha(bg.A, "Normal")
		b.doc.SetFillColor(rgb(bg))
		b.doc.Rect(0, 0, float64(b.cfg.Width), float64(b.cfg.Height), "F")
		b.doc.SetAlpha(1, "Normal")
	}
	b.inFrame = true
	return b.err()
}

// FillPolygon implements render.Backend.
func (b *Backend) FillPolygon(f geometry.Fill) error {
	if !b.inFrame {
		return errNoFrame
	}
	if len(f.Points) < 3 {
		return nil
	}
	alpha := f.Color.A
	if f.Pending {
		alpha *= b.opts.pendingAlpha
	}
	pts := make([]gofpdf.PointType, len(f.Points))
	for i, p := range f.Points {
		pts[i] = b.device(p)
	}

	b.doc.SetAlpha(alpha, "Normal")
	b.doc.SetFillColor(rgb(f.Color))
	b.doc.Polygon(pts, "F")
	b.doc.SetAlpha(1, "Normal")
	return b.err()
}

// StrokeSegment implements render.Backend.
func (b *Backend) StrokeSegment(s geometry.Segment) error {
	if !b.inFrame {
		return errNoFrame
	}
	switch s.Kind {
	case geometry.SegmentLine, geometry.SegmentArc:
		b.stroke(s)
	case geometry.SegmentText:
		b.text(s)
	case geometry.SegmentImage:
		if err := b.image(s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("pdf: unknown segment kind %v", s.Kind)
	}
	return b.err()
}

func (b *Backend) stroke(s geometry.Segment) {
	w := s.Pen.StrokeWidth * b.xf.Scale
	if w <= 0 || len(s.Points) < 2 {
		return
	}
	b.doc.SetAlpha(s.Pen.Color.A, "Normal")
	b.doc.SetDrawColor(rgb(s.Pen.Color))
	b.doc.SetLineWidth(w)
	b.doc.SetLineCapStyle("round")
	b.doc.SetLineJoinStyle("round")

	p := b.device(s.Points[0])
	b.doc.MoveTo(p.X, p.Y)
	for _, q := range s.Points[1:] {
		p = b.device(q)
		b.doc.LineTo(p.X, p.Y)
	}
	b.doc.DrawPath("D")
	b.doc.SetAlpha(1, "Normal")
}

// fontFamily registers font id with the document on first use.
func (b *Backend) fontFamily(id kale.FontID) string {
	if fam, ok := b.fonts[id]; ok {
		return fam
	}
	data := goregular.TTF
	if b.cfg.Fonts != nil {
		if d := b.cfg.Fonts.FontData(id); len(d) > 0 {
			data = d
		}
	}
	fam := fmt.Sprintf("kale%d", id)
	b.doc.AddUTF8FontFromBytes(fam, "", data)
	b.fonts[id] = fam
	return fam
}

func (b *Backend) text(s geometry.Segment) {
	t := s.Text
	if t == nil || t.Content == "" || t.FontSize <= 0 {
		return
	}
	origin := b.device(s.Box[0])

	b.doc.SetFont(b.fontFamily(t.Font), "", t.FontSize*b.xf.Scale)
	b.doc.SetTextColor(rgb(s.Pen.Color))
	b.doc.TransformBegin()
	b.doc.TransformRotate(t.Angle.Degrees(), origin.X, origin.Y)
	b.doc.Text(origin.X, origin.Y, t.Content)
	b.doc.TransformEnd()
}

func (b *Backend) image(s geometry.Segment) error {
	img := s.Image
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil
	}
	src := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			src.SetNRGBA(x, y, img.At(x, y).NRGBA())
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return fmt.Errorf("pdf: encode image: %w", err)
	}

	b.images++
	name := fmt.Sprintf("kale-image-%d", b.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	b.doc.RegisterImageOptionsReader(name, opts, &buf)

	origin := b.device(s.Box[0])
	w := float64(img.Width) * b.xf.Scale
	h := float64(img.Height) * b.xf.Scale
	b.doc.TransformBegin()
	b.doc.TransformRotate(img.Angle.Degrees(), origin.X, origin.Y)
	b.doc.ImageOptions(name, origin.X, origin.Y-h, w, h, false, opts, 0, "")
	b.doc.TransformEnd()
	return nil
}

// EndFrame implements render.Backend.
func (b *Backend) EndFrame() error {
	if !b.inFrame {
		return errNoFrame
	}
	b.inFrame = false
	b.pages++
	return b.err()
}

// Encode writes the document holding every frame ended since the last
// Encode, then starts a new document.
func (b *Backend) Encode(w io.Writer) error {
	if b.doc == nil || b.pages == 0 || b.inFrame {
		return backend.ErrNoFrame
	}
	doc := b.doc
	b.doc = nil
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pdf: write document: %w", err)
	}
	return nil
}

func (b *Backend) err() error {
	if b.doc.Err() {
		return fmt.Errorf("pdf: %w", b.doc.Error())
	}
	return nil
}

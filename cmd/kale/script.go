package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/displaylist"
)

// Script is the YAML form of an edit session.
type Script struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Steps      []Step `yaml:"steps"`
}

// Step is one edit. Exactly one action field must be set.
type Step struct {
	Surface   uint32         `yaml:"surface"`
	Push      *PrimitiveSpec `yaml:"push"`
	Replace   *PrimitiveSpec `yaml:"replace"`
	BeginFill string         `yaml:"begin_fill"`
	EndFill   bool           `yaml:"end_fill"`
	Undo      int            `yaml:"undo"`
	Redo      int            `yaml:"redo"`
	Clear     bool           `yaml:"clear"`
}

// PrimitiveSpec describes one primitive. Exactly one field must be set.
type PrimitiveSpec struct {
	Pen    *PenSpec    `yaml:"pen"`
	LineTo *[2]float64 `yaml:"line_to"`
	Arc    *ArcSpec    `yaml:"arc"`
	Text   *TextSpec   `yaml:"text"`
	Image  *ImageSpec  `yaml:"image"`
}

// PenSpec defaults to an enabled black pen of width 1.
type PenSpec struct {
	Enabled *bool    `yaml:"enabled"`
	Color   string   `yaml:"color"`
	Width   *float64 `yaml:"width"`
}

// ArcSpec angles are in degrees.
type ArcSpec struct {
	Heading float64 `yaml:"heading"`
	Radius  float64 `yaml:"radius"`
	Extent  float64 `yaml:"extent"`
}

type TextSpec struct {
	Content string     `yaml:"content"`
	Size    float64    `yaml:"size"`
	Font    uint32     `yaml:"font"`
	At      [2]float64 `yaml:"at"`
	Align   string     `yaml:"align"`
	Angle   float64    `yaml:"angle"`
}

// ImageSpec pixels are color names or hex strings, row-major from the top
// row. Scale repeats each pixel into a Scale x Scale block.
type ImageSpec struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Pixels []string   `yaml:"pixels"`
	At     [2]float64 `yaml:"at"`
	Align  string     `yaml:"align"`
	Angle  float64    `yaml:"angle"`
	Scale  int        `yaml:"scale"`
}

var errNoAction = errors.New("no action")

// ParseScript decodes a script, rejecting unknown fields.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// Commands converts the steps into display list commands.
func (s *Script) Commands() ([]displaylist.Command, error) {
	var cmds []displaylist.Command
	for i, st := range s.Steps {
		c, err := st.commands()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		cmds = append(cmds, c...)
	}
	return cmds, nil
}

func (st Step) commands() ([]displaylist.Command, error) {
	id := displaylist.SurfaceID(st.Surface)

	var out []displaylist.Command
	actions := 0
	if st.Push != nil {
		actions++
		p, err := st.Push.primitive()
		if err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
		out = append(out, displaylist.Push{ID: id, Primitive: p})
	}
	if st.Replace != nil {
		actions++
		p, err := st.Replace.primitive()
		if err != nil {
			return nil, fmt.Errorf("replace: %w", err)
		}
		out = append(out, displaylist.Replace{ID: id, Primitive: p})
	}
	if st.BeginFill != "" {
		actions++
		c, err := parseColor(st.BeginFill)
		if err != nil {
			return nil, fmt.Errorf("begin_fill: %w", err)
		}
		out = append(out, displaylist.BeginFill{ID: id, Color: c})
	}
	if st.EndFill {
		actions++
		out = append(out, displaylist.EndFill{ID: id})
	}
	if st.Undo > 0 {
		actions++
		for range st.Undo {
			out = append(out, displaylist.Undo{ID: id})
		}
	}
	if st.Redo > 0 {
		actions++
		for range st.Redo {
			out = append(out, displaylist.Redo{ID: id})
		}
	}
	if st.Clear {
		actions++
		out = append(out, displaylist.Clear{ID: id})
	}

	switch {
	case actions == 0:
		return nil, errNoAction
	case actions > 1:
		return nil, fmt.Errorf("%d actions in one step", actions)
	}
	return out, nil
}

func (p *PrimitiveSpec) primitive() (kale.Primitive, error) {
	var out []kale.Primitive
	if p.Pen != nil {
		pen, err := p.Pen.pen()
		if err != nil {
			return nil, err
		}
		out = append(out, kale.SetPen{Pen: pen})
	}
	if p.LineTo != nil {
		out = append(out, kale.LineTo{Point: kale.Pt(p.LineTo[0], p.LineTo[1])})
	}
	if p.Arc != nil {
		out = append(out, kale.Arc{
			Heading: kale.Degrees(p.Arc.Heading),
			Radius:  p.Arc.Radius,
			Extent:  kale.Degrees(p.Arc.Extent),
		})
	}
	if p.Text != nil {
		t, err := p.Text.text()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if p.Image != nil {
		img, err := p.Image.image()
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}

	if len(out) != 1 {
		return nil, fmt.Errorf("want exactly one primitive, got %d", len(out))
	}
	return out[0], nil
}

func (p *PenSpec) pen() (kale.Pen, error) {
	pen := kale.DefaultPen()
	if p.Enabled != nil {
		pen.Enabled = *p.Enabled
	}
	if p.Width != nil {
		pen.StrokeWidth = *p.Width
	}
	if p.Color != "" {
		c, err := parseColor(p.Color)
		if err != nil {
			return kale.Pen{}, err
		}
		pen.Color = c
	}
	return pen, nil
}

func (t *TextSpec) text() (*kale.Text, error) {
	align, err := parseAlign(t.Align)
	if err != nil {
		return nil, err
	}
	size := t.Size
	if size == 0 {
		size = 16
	}
	return &kale.Text{
		Font:     kale.FontID(t.Font),
		Content:  t.Content,
		FontSize: size,
		Start:    kale.Pt(t.At[0], t.At[1]),
		Align:    align,
		Angle:    kale.Degrees(t.Angle),
	}, nil
}

func (s *ImageSpec) image() (*kale.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d", s.Width, s.Height)
	}
	if len(s.Pixels) != s.Width*s.Height {
		return nil, fmt.Errorf("image has %d pixels, want %d", len(s.Pixels), s.Width*s.Height)
	}
	align, err := parseAlign(s.Align)
	if err != nil {
		return nil, err
	}
	scale := max(s.Scale, 1)

	w, h := s.Width*scale, s.Height*scale
	pixels := make([]kale.RGBA, w*h)
	for i, name := range s.Pixels {
		c, err := parseColor(name)
		if err != nil {
			return nil, fmt.Errorf("pixel %d: %w", i, err)
		}
		x0, y0 := (i%s.Width)*scale, (i/s.Width)*scale
		for y := y0; y < y0+scale; y++ {
			for x := x0; x < x0+scale; x++ {
				pixels[y*w+x] = c
			}
		}
	}
	return &kale.Image{
		Pixels: pixels,
		Width:  w,
		Height: h,
		Start:  kale.Pt(s.At[0], s.At[1]),
		Align:  align,
		Angle:  kale.Degrees(s.Angle),
	}, nil
}

var namedColors = map[string]kale.RGBA{
	"black":       kale.Black,
	"white":       kale.White,
	"red":         kale.Red,
	"green":       kale.Green,
	"blue":        kale.Blue,
	"yellow":      kale.Yellow,
	"cyan":        kale.Cyan,
	"magenta":     kale.Magenta,
	"transparent": kale.Transparent,
}

func parseColor(s string) (kale.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return kale.ParseHex(s)
}

func parseAlign(s string) (kale.Align, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return kale.AlignLeft, nil
	case "center":
		return kale.AlignCenter, nil
	case "right":
		return kale.AlignRight, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/backend"
)

type faceKey struct {
	font kale.FontID
	size float64
}

// fontCache parses each font once and keeps one face per size.
type fontCache struct {
	src    backend.FontSource
	parsed map[kale.FontID]*opentype.Font
	faces  map[faceKey]font.Face
}

func newFontCache(src backend.FontSource) *fontCache {
	return &fontCache{
		src:    src,
		parsed: make(map[kale.FontID]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

func (c *fontCache) face(id kale.FontID, size float64) (font.Face, error) {
	key := faceKey{font: id, size: size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	otf, ok := c.parsed[id]
	if !ok {
		data := goregular.TTF
		if c.src != nil {
			if d := c.src.FontData(id); len(d) > 0 {
				data = d
			}
		}
		var err error
		otf, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("raster: parse font %d: %w", id, err)
		}
		c.parsed[id] = otf
	}

	f, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: face %d at %v: %w", id, size, err)
	}
	c.faces[key] = f
	return f, nil
}

// drawString draws s left-aligned in dst with its baseline raised above
// the bottom edge by the face descent.
func drawString(dst *image.RGBA, face font.Face, s string, c kale.RGBA) {
	m := face.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(dst.Bounds().Dy()) - m.Descent},
	}
	d.DrawString(s)
}

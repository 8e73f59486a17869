package text

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/internal/cache"
)

// DefaultFont is the FontID of the built-in Go Regular face.
const DefaultFont kale.FontID = 0

// Measurer shapes text with HarfBuzz to find its advance width.
//
// Parsed fonts are shared; font.Face and HarfbuzzShaper are not safe for
// concurrent use, so each shaping call gets its own face and a pooled
// shaper.
type Measurer struct {
	mu    sync.RWMutex
	fonts map[kale.FontID]*registered

	shapers sync.Pool
	lang    language.Language
	widths  *cache.Cache[measureKey, float64]
}

type registered struct {
	data []byte
	font *font.Font
}

type measureKey struct {
	font    kale.FontID
	size    float64
	content string
}

// Stats contains measurement cache statistics.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewMeasurer creates a measurer with Go Regular registered as font 0.
func NewMeasurer(opts ...Option) (*Measurer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Measurer{
		fonts: make(map[kale.FontID]*registered),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		lang:   language.NewLanguage(o.language),
		widths: cache.New[measureKey, float64](o.cacheSize),
	}
	if err := m.register(DefaultFont, goregular.TTF); err != nil {
		return nil, err
	}
	return m, nil
}

// Register parses TrueType or OpenType data and makes it available as id.
// Registering an id again replaces the font and forgets its measurements.
func (m *Measurer) Register(id kale.FontID, data []byte) error {
	if id == DefaultFont {
		return ErrReservedFont
	}
	return m.register(id, data)
}

func (m *Measurer) register(id kale.FontID, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("text: parse font %d: %w", id, err)
	}

	m.mu.Lock()
	_, replaced := m.fonts[id]
	m.fonts[id] = &registered{data: data, font: face.Font}
	m.mu.Unlock()

	if replaced {
		m.widths.Clear()
	}
	kale.Logger().Debug("text: font registered", "font", id, "bytes", len(data))
	return nil
}

// Fonts returns the registered font IDs in ascending order.
func (m *Measurer) Fonts() []kale.FontID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]kale.FontID, 0, len(m.fonts))
	for id := range m.fonts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// FontData returns the raw data of font id, falling back to the default
// font for unknown IDs. Backends use it to draw with the same font the
// text was measured with.
func (m *Measurer) FontData(id kale.FontID) []byte {
	return m.lookup(id).data
}

func (m *Measurer) lookup(id kale.FontID) *registered {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.fonts[id]; ok {
		return r
	}
	return m.fonts[DefaultFont]
}

// MeasureText returns the advance width of t.Content at t.FontSize and a
// height equal to the font size.
func (m *Measurer) MeasureText(t *kale.Text) (width, height float64) {
	if t.FontSize <= 0 || t.Content == "" {
		return 0, max(t.FontSize, 0)
	}
	key := measureKey{font: t.Font, size: t.FontSize, content: t.Content}
	width = m.widths.GetOrCreate(key, func() float64 {
		return m.advance(m.lookup(t.Font).font, t.Content, t.FontSize)
	})
	return width, t.FontSize
}

// Stats returns measurement cache statistics.
func (m *Measurer) Stats() Stats {
	s := m.widths.Stats()
	return Stats{Entries: s.Len, Hits: s.Hits, Misses: s.Misses}
}

// advance shapes each bidi run of s and sums the advances.
func (m *Measurer) advance(f *font.Font, s string, size float64) float64 {
	face := font.NewFace(f)
	hb := m.shapers.Get().(*shaping.HarfbuzzShaper)
	defer m.shapers.Put(hb)

	var total fixed.Int26_6
	for _, r := range runs(s) {
		out := hb.Shape(shaping.Input{
			Text:      r.text,
			RunStart:  0,
			RunEnd:    len(r.text),
			Direction: r.dir,
			Face:      face,
			Size:      floatToFixed(size),
			Script:    detectScript(r.text),
			Language:  m.lang,
		})
		total += out.Advance
	}
	return fixedToFloat(total)
}

type run struct {
	text []rune
	dir  di.Direction
}

// runs splits s into directional runs. If bidi analysis fails the whole
// string is one left-to-right run.
func runs(s string) []run {
	all := []rune(s)
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []run{{text: all, dir: di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []run{{text: all, dir: di.DirectionLTR}}
	}

	out := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		br := ordering.Run(i)
		dir := di.DirectionLTR
		if br.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		// Pos is an inclusive rune range.
		start, end := br.Pos()
		if start < 0 || end >= len(all) || start > end {
			continue
		}
		out = append(out, run{text: all[start : end+1], dir: dir})
	}
	if len(out) == 0 {
		return []run{{text: all, dir: di.DirectionLTR}}
	}
	return out
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

package text

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/displaylist"
	"github.com/sunjay/kale/geometry"
)

var _ geometry.TextMeasurer = (*Measurer)(nil)

func newMeasurer(t *testing.T, opts ...Option) *Measurer {
	t.Helper()
	m, err := NewMeasurer(opts...)
	if err != nil {
		t.Fatalf("NewMeasurer() error = %v", err)
	}
	return m
}

func TestMeasureText(t *testing.T) {
	m := newMeasurer(t)

	short, h := m.MeasureText(&kale.Text{Content: "Hi", FontSize: 20})
	if short <= 0 {
		t.Fatalf("width of %q = %v, want > 0", "Hi", short)
	}
	if h != 20 {
		t.Errorf("height = %v, want 20", h)
	}

	long, _ := m.MeasureText(&kale.Text{Content: "Hi there", FontSize: 20})
	if long <= short {
		t.Errorf("width of longer text %v <= %v", long, short)
	}

	double, _ := m.MeasureText(&kale.Text{Content: "Hi", FontSize: 40})
	if math.Abs(double-2*short) > 1 {
		t.Errorf("width at 40 = %v, want about %v", double, 2*short)
	}
}

func TestMeasureTextEmpty(t *testing.T) {
	m := newMeasurer(t)
	tests := []struct {
		name  string
		text  kale.Text
		wantH float64
	}{
		{"empty content", kale.Text{FontSize: 12}, 12},
		{"zero size", kale.Text{Content: "abc"}, 0},
		{"negative size", kale.Text{Content: "abc", FontSize: -3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := m.MeasureText(&tt.text)
			if w != 0 || h != tt.wantH {
				t.Errorf("MeasureText() = %v, %v, want 0, %v", w, h, tt.wantH)
			}
		})
	}
}

func TestMeasureTextBidi(t *testing.T) {
	m := newMeasurer(t)
	w, _ := m.MeasureText(&kale.Text{Content: "abc שלום def", FontSize: 16})
	if w <= 0 {
		t.Errorf("mixed-direction width = %v, want > 0", w)
	}
	if n := len(runs("abc שלום def")); n < 2 {
		t.Errorf("runs() = %d runs, want at least 2", n)
	}
	if got := runs("plain"); len(got) != 1 || got[0].dir != di.DirectionLTR {
		t.Errorf("runs(plain) = %+v, want one LTR run", got)
	}
}

func TestMeasurerCache(t *testing.T) {
	m := newMeasurer(t)
	txt := &kale.Text{Content: "cached", FontSize: 10}

	first, _ := m.MeasureText(txt)
	second, _ := m.MeasureText(txt)
	if first != second {
		t.Errorf("cached width %v != %v", second, first)
	}
	if s := m.Stats(); s.Hits != 1 || s.Misses != 1 || s.Entries != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, 1 entry", s)
	}
}

func TestMeasurerRegister(t *testing.T) {
	m := newMeasurer(t)

	if err := m.Register(DefaultFont, gomono.TTF); !errors.Is(err, ErrReservedFont) {
		t.Errorf("Register(0) error = %v, want ErrReservedFont", err)
	}
	if err := m.Register(3, nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("Register(nil) error = %v, want ErrEmptyFontData", err)
	}
	if err := m.Register(3, []byte("not a font")); err == nil {
		t.Error("Register(garbage) error = nil")
	}
	if err := m.Register(3, gomono.TTF); err != nil {
		t.Fatalf("Register(gomono) error = %v", err)
	}

	if got, want := m.Fonts(), []kale.FontID{0, 3}; !slices.Equal(got, want) {
		t.Errorf("Fonts() = %v, want %v", got, want)
	}
	if len(m.FontData(3)) != len(gomono.TTF) {
		t.Error("FontData(3) is not the registered data")
	}
	if len(m.FontData(99)) != len(m.FontData(DefaultFont)) {
		t.Error("FontData(99) does not fall back to the default font")
	}

	regular, _ := m.MeasureText(&kale.Text{Content: "Wide text", FontSize: 30})
	mono, _ := m.MeasureText(&kale.Text{Font: 3, Content: "Wide text", FontSize: 30})
	if mono == regular {
		t.Errorf("mono and regular widths are both %v", mono)
	}
	unknown, _ := m.MeasureText(&kale.Text{Font: 99, Content: "Wide text", FontSize: 30})
	if unknown != regular {
		t.Errorf("unknown font width = %v, want default %v", unknown, regular)
	}
}

func TestMeasurerConcurrent(t *testing.T) {
	m := newMeasurer(t, WithCacheSize(4))
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 20 {
				content := string(rune('a' + (g+i)%10))
				if w, _ := m.MeasureText(&kale.Text{Content: content, FontSize: 12}); w <= 0 {
					t.Errorf("width of %q = %v", content, w)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCompilerWithMeasurer(t *testing.T) {
	m := newMeasurer(t)
	txt := &kale.Text{Content: "Hello", FontSize: 24, Start: kale.Pt(10, 10)}
	w, _ := m.MeasureText(txt)

	store := displaylist.NewStore()
	store.Push(1, txt)
	g := geometry.NewCompiler(geometry.WithMeasurer(m)).Compile(store.Surface(1))
	if !g.End.Approx(kale.Pt(10+w, 10), 1e-9) {
		t.Errorf("End = %v, want (%v, 10)", g.End, 10+w)
	}
}

package render

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/displaylist"
	"github.com/sunjay/kale/geometry"
)

// ComposerOption configures a Composer during creation.
type ComposerOption func(*composerOptions)

type composerOptions struct {
	order      []displaylist.SurfaceID
	background kale.RGBA
}

// WithOrder sets an explicit surface draw order; later surfaces draw on
// top. Surfaces not listed are skipped. By default every surface in the
// store is drawn in the order it was first referenced.
func WithOrder(ids []displaylist.SurfaceID) ComposerOption {
	return func(o *composerOptions) {
		o.order = slices.Clone(ids)
	}
}

// WithBackground sets the color each frame is cleared to.
// The default is White.
func WithBackground(bg kale.RGBA) ComposerOption {
	return func(o *composerOptions) {
		o.background = bg
	}
}

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Surfaces int
	Fills    int
	Strokes  int
	// Pending counts outlines of fills still open.
	Pending int
	// Compiles counts surfaces recompiled for this frame.
	Compiles int
	Duration time.Duration
}

// Composer draws every surface of a store into a Backend.
type Composer struct {
	cache   *Cache
	backend Backend
	opts    composerOptions
	last    FrameStats
}

// NewComposer creates a composer reading geometry from cache.
func NewComposer(cache *Cache, backend Backend, opts ...ComposerOption) *Composer {
	o := composerOptions{background: kale.White}
	for _, opt := range opts {
		opt(&o)
	}
	return &Composer{cache: cache, backend: backend, opts: o}
}

// LastFrame returns statistics of the most recent successful Render.
func (c *Composer) LastFrame() FrameStats { return c.last }

// Render draws one frame.
//
// Within a surface, fills and strokes are emitted in log order; a fill
// region starting at log index i is drawn before the stroke at index i so
// the outline stays visible. The outline of an open fill is drawn last.
//
// ctx is checked between surfaces. Backend errors abort the frame and are
// returned wrapped with the surface ID; the store and cache are unaffected.
func (c *Composer) Render(ctx context.Context) error {
	start := time.Now()
	misses := c.cache.Stats().Misses

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.backend.BeginFrame(c.opts.background); err != nil {
		return c.fail(fmt.Errorf("render: begin frame: %w", err))
	}

	ids := c.opts.order
	if ids == nil {
		ids = c.cache.Store().IDs()
	}

	var stats FrameStats
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := c.cache.GetOrCompile(id)
		if err := c.drawSurface(g, &stats); err != nil {
			return c.fail(fmt.Errorf("render: surface %d: %w", id, err))
		}
		stats.Surfaces++
	}

	if err := c.backend.EndFrame(); err != nil {
		return c.fail(fmt.Errorf("render: end frame: %w", err))
	}

	stats.Compiles = int(c.cache.Stats().Misses - misses)
	stats.Duration = time.Since(start)
	c.last = stats

	if l := kale.Logger(); l.Enabled(ctx, slog.LevelDebug) {
		l.Debug("render: frame",
			slog.Int("surfaces", stats.Surfaces),
			slog.Int("strokes", stats.Strokes),
			slog.Int("fills", stats.Fills),
			slog.Int("compiles", stats.Compiles),
			slog.Duration("duration", stats.Duration))
	}
	return nil
}

func (c *Composer) fail(err error) error {
	kale.Logger().Warn("render: frame failed", slog.Any("error", err))
	return err
}

// drawSurface merges fills into the stroke sequence by log index.
func (c *Composer) drawSurface(g *geometry.Geometry, stats *FrameStats) error {
	fills := g.Fills
	if !slices.IsSortedFunc(fills, byIndex) {
		fills = slices.Clone(fills)
		slices.SortStableFunc(fills, byIndex)
	}

	next := 0
	for _, s := range g.Strokes {
		for next < len(fills) && fills[next].Index <= s.Index {
			if err := c.backend.FillPolygon(fills[next]); err != nil {
				return err
			}
			stats.Fills++
			next++
		}
		if err := c.backend.StrokeSegment(s); err != nil {
			return err
		}
		stats.Strokes++
	}
	for ; next < len(fills); next++ {
		if err := c.backend.FillPolygon(fills[next]); err != nil {
			return err
		}
		stats.Fills++
	}

	if g.Pending != nil {
		if err := c.backend.FillPolygon(*g.Pending); err != nil {
			return err
		}
		stats.Pending++
	}
	return nil
}

func byIndex(a, b geometry.Fill) int { return cmp.Compare(a.Index, b.Index) }

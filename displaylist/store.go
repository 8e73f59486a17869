package displaylist

import (
	"context"
	"log/slog"

	"github.com/sunjay/kale"
)

// StoreOption configures a Store during creation.
type StoreOption func(*storeOptions)

type storeOptions struct {
	defaultPen kale.Pen
}

func defaultStoreOptions() storeOptions {
	return storeOptions{defaultPen: kale.DefaultPen()}
}

// WithDefaultPen sets the pen new surfaces start with.
//
// Example:
//
//	store := displaylist.NewStore(displaylist.WithDefaultPen(kale.Pen{
//	    Enabled: true, Color: kale.Blue, StrokeWidth: 2,
//	}))
func WithDefaultPen(p kale.Pen) StoreOption {
	return func(o *storeOptions) {
		o.defaultPen = p
	}
}

// Store owns the history of every surface and is the sole mutator of
// history state.
//
// Surfaces are created on first reference, by a read or an edit, and are
// never removed. IDs reports them in the order they were first referenced.
type Store struct {
	surfaces map[SurfaceID]*History
	order    []SurfaceID
	opts     storeOptions
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		surfaces: make(map[SurfaceID]*History),
		opts:     o,
	}
}

// surface returns the history for id, creating it if needed.
func (s *Store) surface(id SurfaceID) *History {
	h, ok := s.surfaces[id]
	if !ok {
		h = newHistory(s.opts.defaultPen)
		s.surfaces[id] = h
		s.order = append(s.order, id)
	}
	return h
}

// Surface returns the history for id, creating an empty one if the surface
// has not been referenced yet. Callers outside the package must treat the
// result as read-only.
func (s *Store) Surface(id SurfaceID) *History {
	return s.surface(id)
}

// Lookup returns the history for id without creating it.
func (s *Store) Lookup(id SurfaceID) (*History, bool) {
	h, ok := s.surfaces[id]
	return h, ok
}

// IDs returns every known surface in first-reference order.
// The returned slice must not be modified.
func (s *Store) IDs() []SurfaceID { return s.order }

// Len returns the number of known surfaces.
func (s *Store) Len() int { return len(s.order) }

// Push appends p to the display list of id and discards its redo stack.
// A nil primitive is ignored.
func (s *Store) Push(id SurfaceID, p kale.Primitive) {
	if p == nil {
		return
	}
	h := s.surface(id)
	h.push(p)
	logEdit(id, OpPush, h, slog.String("primitive", p.Kind().String()))
}

// Replace swaps the last primitive of id for p. The removed primitive is
// discarded rather than placed on the redo stack, so Replace suits
// animations that repeatedly rewrite the tip of the path. On an empty log
// Replace behaves like Push. A nil primitive is ignored.
func (s *Store) Replace(id SurfaceID, p kale.Primitive) {
	if p == nil {
		return
	}
	h := s.surface(id)
	h.replace(p)
	logEdit(id, OpReplace, h, slog.String("primitive", p.Kind().String()))
}

// BeginFill marks the current end of the display list as the start of a
// shape filled with color. Only the first BeginFill of an open/close cycle
// takes effect; later ones do nothing until EndFill.
//
// Undoing the primitive at the start of the region, or any earlier one,
// drops the designation without applying the fill.
func (s *Store) BeginFill(id SurfaceID, color kale.RGBA) {
	h := s.surface(id)
	if h.beginFill(color) {
		logEdit(id, OpBeginFill, h)
	}
}

// EndFill completes the shape started by BeginFill. The region covers the
// primitives pushed since BeginFill; a region with no primitives produces
// no polygon. Does nothing if no fill is open.
func (s *Store) EndFill(id SurfaceID) {
	h := s.surface(id)
	if h.endFill() {
		logEdit(id, OpEndFill, h)
	}
}

// Undo moves the last primitive of id onto its redo stack.
// Does nothing if the display list is empty.
func (s *Store) Undo(id SurfaceID) {
	h := s.surface(id)
	if h.undo() {
		logEdit(id, OpUndo, h)
	}
}

// Redo moves the most recently undone primitive of id back onto its
// display list. A fill designation dropped by an earlier Undo stays
// dropped. Does nothing if nothing was undone.
func (s *Store) Redo(id SurfaceID) {
	h := s.surface(id)
	if h.redoOne() {
		logEdit(id, OpRedo, h)
	}
}

// Clear empties the display list and redo stack of id and drops its fill
// regions. The most recently set pen is kept and applies to primitives
// pushed afterwards.
func (s *Store) Clear(id SurfaceID) {
	h := s.surface(id)
	h.clearAll()
	logEdit(id, OpClear, h)
}

func logEdit(id SurfaceID, op Op, h *History, attrs ...slog.Attr) {
	l := kale.Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	args := make([]any, 0, 4+len(attrs))
	args = append(args,
		slog.Uint64("surface", uint64(id)),
		slog.Int("len", h.Len()),
		slog.Int("redo", h.RedoLen()),
		slog.Uint64("version", h.Version()),
	)
	for _, a := range attrs {
		args = append(args, a)
	}
	l.Debug("displaylist: "+op.String(), args...)
}

package displaylist

import (
	"errors"
	"fmt"

	"github.com/sunjay/kale"
)

// ErrInvariant is wrapped by every error returned from History.Validate.
var ErrInvariant = errors.New("displaylist: invariant violated")

// SurfaceID identifies an independent drawing surface.
type SurfaceID uint32

// FillRegion is a span of the log whose path outline is filled with Color.
//
// Start is the log index of the first primitive in the region. For a
// committed region End is one past its last primitive; for an open region
// End is unused and the region runs to the end of the log.
//
// A committed region keeps the outline it had when it was ended. Once an
// edit removes or replaces a primitive below End, Path holds the
// primitives log[:End] as they were at that point and the region no
// longer reads the live log. Path is nil while the log still holds them.
type FillRegion struct {
	Start int
	End   int
	Color kale.RGBA
	Path  []kale.Primitive
}

// Frozen reports whether the region has detached from the live log.
func (f FillRegion) Frozen() bool { return f.Path != nil }

// History is the edit history of a single surface.
type History struct {
	log  []kale.Primitive
	redo []kale.Primitive

	fill     *FillRegion
	fills    []FillRegion
	basePen  kale.Pen
	retained kale.Pen

	dirty   bool
	version uint64
	last    Op // most recent effective edit
}

func newHistory(pen kale.Pen) *History {
	return &History{
		basePen:  pen,
		retained: pen,
		dirty:    true,
	}
}

// Log returns the primitives currently in effect, oldest first.
// The returned slice must not be modified.
func (h *History) Log() []kale.Primitive { return h.log }

// Len returns the number of primitives in the log.
func (h *History) Len() int { return len(h.log) }

// RedoLen returns the number of primitives that Redo can restore.
func (h *History) RedoLen() int { return len(h.redo) }

// OpenFill returns the fill region started by BeginFill that has not been
// ended yet.
func (h *History) OpenFill() (FillRegion, bool) {
	if h.fill == nil {
		return FillRegion{}, false
	}
	return *h.fill, true
}

// Fills returns the committed fill regions in the order they were ended.
// The returned slice must not be modified.
func (h *History) Fills() []FillRegion { return h.fills }

// RetainedPen returns the last pen set on the surface. It survives Clear.
func (h *History) RetainedPen() kale.Pen { return h.retained }

// BasePen returns the pen in effect before the first primitive of the log.
func (h *History) BasePen() kale.Pen { return h.basePen }

// Dirty reports whether the history changed since it was last compiled.
func (h *History) Dirty() bool { return h.dirty }

// Version is incremented by every effective mutation.
func (h *History) Version() uint64 { return h.version }

// MarkClean records that the current state has been compiled.
// Only the geometry cache calls it.
func (h *History) MarkClean() { h.dirty = false }

func (h *History) touch(op Op) {
	h.dirty = true
	h.version++
	h.last = op
}

// append adds p to the log, tracking the retained pen.
func (h *History) append(p kale.Primitive) {
	h.log = append(h.log, p)
	if sp, ok := p.(kale.SetPen); ok {
		h.retained = sp.Pen
	}
}

// discardRedo drops the redo stack.
func (h *History) discardRedo() {
	if len(h.redo) == 0 {
		return
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// freeze detaches every committed fill that covers log index i before the
// entry is removed or overwritten. Live fills never reach past len(log),
// so log[:End] is still intact here. Fills detached together share one
// copy.
func (h *History) freeze(i int) {
	var path []kale.Primitive
	for j := range h.fills {
		f := &h.fills[j]
		if f.Path != nil || f.End <= i {
			continue
		}
		if path == nil {
			path = append([]kale.Primitive(nil), h.log...)
		}
		f.Path = path[:f.End:f.End]
	}
}

func (h *History) push(p kale.Primitive) {
	h.discardRedo()
	h.append(p)
	h.touch(OpPush)
}

func (h *History) replace(p kale.Primitive) {
	if n := len(h.log); n > 0 {
		h.freeze(n - 1)
		h.log[n-1] = nil
		h.log = h.log[:n-1]
	}
	h.discardRedo()
	h.append(p)
	h.touch(OpReplace)
}

func (h *History) beginFill(color kale.RGBA) bool {
	if h.fill != nil {
		return false
	}
	h.discardRedo()
	h.fill = &FillRegion{Start: len(h.log), End: -1, Color: color}
	h.touch(OpBeginFill)
	return true
}

func (h *History) endFill() bool {
	if h.fill == nil {
		return false
	}
	h.discardRedo()
	f := *h.fill
	f.End = len(h.log)
	if f.End > f.Start {
		h.fills = append(h.fills, f)
	}
	h.fill = nil
	h.touch(OpEndFill)
	return true
}

func (h *History) undo() bool {
	n := len(h.log)
	if n == 0 {
		return false
	}
	i := n - 1
	h.freeze(i)
	p := h.log[i]
	h.log[i] = nil
	h.log = h.log[:i]
	h.redo = append(h.redo, p)

	if h.fill != nil && i <= h.fill.Start {
		h.fill = nil
	}
	h.touch(OpUndo)
	return true
}

func (h *History) redoOne() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	p := h.redo[n-1]
	h.redo[n-1] = nil
	h.redo = h.redo[:n-1]
	h.append(p)
	h.touch(OpRedo)
	return true
}

func (h *History) clearAll() {
	clear(h.log)
	h.log = h.log[:0]
	clear(h.redo)
	h.redo = h.redo[:0]
	h.fill = nil
	h.fills = nil
	h.basePen = h.retained
	h.touch(OpClear)
}

// Validate checks the structural invariants of the history and returns an
// error wrapping ErrInvariant for the first violation found.
func (h *History) Validate() error {
	if h.fill != nil {
		if h.fill.Start < 0 || h.fill.Start > len(h.log) {
			return fmt.Errorf("%w: open fill starts at %d, log has %d entries", ErrInvariant, h.fill.Start, len(h.log))
		}
	}
	if len(h.redo) > 0 && h.last != OpUndo && h.last != OpRedo {
		return fmt.Errorf("%w: %d redo entries survive a %v", ErrInvariant, len(h.redo), h.last)
	}
	for i, f := range h.fills {
		if f.Start < 0 || f.End <= f.Start {
			return fmt.Errorf("%w: fill %d spans [%d, %d)", ErrInvariant, i, f.Start, f.End)
		}
		if f.Path != nil {
			if len(f.Path) != f.End {
				return fmt.Errorf("%w: fill %d holds %d primitives for span end %d", ErrInvariant, i, len(f.Path), f.End)
			}
			continue
		}
		if f.End > len(h.log) {
			return fmt.Errorf("%w: fill %d ends at %d past %d log entries", ErrInvariant, i, f.End, len(h.log))
		}
	}
	for i, p := range h.log {
		if p == nil {
			return fmt.Errorf("%w: nil primitive at log index %d", ErrInvariant, i)
		}
	}
	return nil
}

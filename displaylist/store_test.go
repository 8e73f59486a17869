package displaylist

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sunjay/kale"
)

const id SurfaceID = 1

var (
	penRed  = kale.Pen{Enabled: true, Color: kale.Red, StrokeWidth: 30}
	penBlue = kale.Pen{Enabled: true, Color: kale.Blue, StrokeWidth: 30}
)

func line(x, y float64) kale.LineTo { return kale.LineTo{Point: kale.Pt(x, y)} }

// mustValid fails the test if the surface history breaks an invariant.
func mustValid(t *testing.T, s *Store, id SurfaceID) {
	t.Helper()
	h, ok := s.Lookup(id)
	if !ok {
		return
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestStoreAutoVivify(t *testing.T) {
	s := NewStore()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	s.Undo(7)
	s.Redo(3)
	s.EndFill(7)

	if got, want := s.IDs(), []SurfaceID{7, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	h := s.Surface(7)
	if h.Len() != 0 || h.RedoLen() != 0 {
		t.Errorf("new surface has log %d redo %d, want empty", h.Len(), h.RedoLen())
	}
	if h.RetainedPen() != kale.DefaultPen() {
		t.Errorf("RetainedPen() = %v, want DefaultPen", h.RetainedPen())
	}
}

func TestStoreWithDefaultPen(t *testing.T) {
	s := NewStore(WithDefaultPen(penBlue))
	h := s.Surface(id)
	if h.BasePen() != penBlue || h.RetainedPen() != penBlue {
		t.Errorf("BasePen() = %v, RetainedPen() = %v, want %v", h.BasePen(), h.RetainedPen(), penBlue)
	}
}

func TestPushUndoRedoRoundTrip(t *testing.T) {
	s := NewStore()
	prims := []kale.Primitive{
		line(0, 100),
		kale.SetPen{Pen: penRed},
		kale.Arc{Heading: kale.Degrees(90), Radius: 10, Extent: kale.Degrees(180)},
		line(5, 5),
	}
	for _, p := range prims {
		s.Push(id, p)
	}
	before := append([]kale.Primitive(nil), s.Surface(id).Log()...)

	for n := 1; n <= len(prims)+1; n++ {
		for i := 0; i < n; i++ {
			s.Undo(id)
		}
		for i := 0; i < n; i++ {
			s.Redo(id)
		}
		if got := s.Surface(id).Log(); !reflect.DeepEqual(got, before) {
			t.Fatalf("after %d undo/redo log = %v, want %v", n, got, before)
		}
		mustValid(t, s, id)
	}
}

func TestEditAfterUndoPoisonsRedo(t *testing.T) {
	edits := []struct {
		name string
		edit func(s *Store)
	}{
		{"push", func(s *Store) { s.Push(id, line(1, 1)) }},
		{"replace", func(s *Store) { s.Replace(id, line(1, 1)) }},
		{"begin fill", func(s *Store) { s.BeginFill(id, kale.Cyan) }},
		{"clear", func(s *Store) { s.Clear(id) }},
	}

	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Push(id, line(0, 10))
			s.Push(id, line(0, 20))
			s.Undo(id)
			s.Undo(id)
			if s.Surface(id).RedoLen() != 2 {
				t.Fatalf("RedoLen() = %d, want 2", s.Surface(id).RedoLen())
			}

			tt.edit(s)
			if n := s.Surface(id).RedoLen(); n != 0 {
				t.Fatalf("RedoLen() after %s = %d, want 0", tt.name, n)
			}

			before := append([]kale.Primitive(nil), s.Surface(id).Log()...)
			s.Redo(id)
			if got := s.Surface(id).Log(); !reflect.DeepEqual(got, before) {
				t.Errorf("Redo after %s changed log to %v, want %v", tt.name, got, before)
			}
			mustValid(t, s, id)
		})
	}
}

func TestEndFillPoisonsRedo(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 100))
	s.Push(id, line(100, 100))
	s.Undo(id)
	s.EndFill(id)

	h := s.Surface(id)
	if h.RedoLen() != 0 {
		t.Errorf("RedoLen() = %d, want 0", h.RedoLen())
	}
	if got := h.Fills(); len(got) != 1 || got[0].Start != 0 || got[0].End != 1 {
		t.Errorf("Fills() = %v, want one region [0, 1)", got)
	}
	mustValid(t, s, id)
}

func TestReplace(t *testing.T) {
	t.Run("empty log behaves like push", func(t *testing.T) {
		s := NewStore()
		s.Replace(id, line(1, 2))
		if got := s.Surface(id).Log(); len(got) != 1 || got[0] != line(1, 2) {
			t.Errorf("Log() = %v, want [LineTo(1,2)]", got)
		}
	})

	t.Run("replaced entry is not redoable", func(t *testing.T) {
		s := NewStore()
		s.Push(id, line(1, 2))
		s.Replace(id, line(3, 4))
		h := s.Surface(id)
		if got := h.Log(); len(got) != 1 || got[0] != line(3, 4) {
			t.Errorf("Log() = %v, want [LineTo(3,4)]", got)
		}
		if h.RedoLen() != 0 {
			t.Errorf("RedoLen() = %d, want 0", h.RedoLen())
		}
		s.Undo(id)
		s.Redo(id)
		if got := h.Log(); len(got) != 1 || got[0] != line(3, 4) {
			t.Errorf("Log() after undo/redo = %v, want [LineTo(3,4)]", got)
		}
	})

	t.Run("set pen updates retained pen", func(t *testing.T) {
		s := NewStore()
		s.Push(id, line(0, 100))
		s.Replace(id, kale.SetPen{Pen: penRed})
		if got := s.Surface(id).RetainedPen(); got != penRed {
			t.Errorf("RetainedPen() = %v, want %v", got, penRed)
		}
	})
}

func TestClearRetainsPen(t *testing.T) {
	s := NewStore()
	s.Push(id, line(0, 100))
	s.Replace(id, kale.SetPen{Pen: penRed})

	for i := 1; i <= 3; i++ {
		s.Clear(id)
		h := s.Surface(id)
		if h.Len() != 0 || h.RedoLen() != 0 {
			t.Fatalf("after Clear #%d log %d redo %d, want empty", i, h.Len(), h.RedoLen())
		}
		if h.RetainedPen() != penRed {
			t.Fatalf("after Clear #%d RetainedPen() = %v, want %v", i, h.RetainedPen(), penRed)
		}
		if h.BasePen() != penRed {
			t.Fatalf("after Clear #%d BasePen() = %v, want %v", i, h.BasePen(), penRed)
		}
		mustValid(t, s, id)
	}
}

func TestClearDropsFills(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 100))
	s.EndFill(id)
	s.BeginFill(id, kale.Red)
	s.Push(id, line(0, 10))
	s.Undo(id)

	s.Clear(id)
	h := s.Surface(id)
	if _, open := h.OpenFill(); open {
		t.Error("OpenFill() still open after Clear")
	}
	if len(h.Fills()) != 0 {
		t.Errorf("Fills() = %v, want none", h.Fills())
	}
	if h.RedoLen() != 0 {
		t.Errorf("RedoLen() = %d, want 0", h.RedoLen())
	}
}

func TestSecondBeginFillIgnored(t *testing.T) {
	s := NewStore()
	s.Push(id, line(0, 1))
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 2))
	v := s.Surface(id).Version()

	s.BeginFill(id, kale.Red)

	f, ok := s.Surface(id).OpenFill()
	if !ok {
		t.Fatal("OpenFill() not open")
	}
	if f.Start != 1 || f.Color != kale.Cyan {
		t.Errorf("OpenFill() = %+v, want start 1 color cyan", f)
	}
	if got := s.Surface(id).Version(); got != v {
		t.Errorf("Version() = %d after ignored BeginFill, want %d", got, v)
	}
}

func TestEndFillWithoutOpenFill(t *testing.T) {
	s := NewStore()
	s.Push(id, line(0, 1))
	h := s.Surface(id)
	h.MarkClean()
	v := h.Version()

	s.EndFill(id)

	if h.Dirty() {
		t.Error("EndFill without open fill marked the surface dirty")
	}
	if h.Version() != v {
		t.Errorf("Version() = %d, want %d", h.Version(), v)
	}
	if len(h.Fills()) != 0 {
		t.Errorf("Fills() = %v, want none", h.Fills())
	}
}

func TestUndoAcrossFillStartClearsFill(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 100))
	s.Push(id, line(100, 100))

	s.Undo(id)
	if _, ok := s.Surface(id).OpenFill(); !ok {
		t.Fatal("fill cleared by Undo of an entry after its start")
	}

	s.Undo(id)
	if _, ok := s.Surface(id).OpenFill(); ok {
		t.Fatal("fill still open after Undo removed its first entry")
	}

	s.Redo(id)
	s.Redo(id)
	if _, ok := s.Surface(id).OpenFill(); ok {
		t.Error("Redo resurrected a cleared fill")
	}

	s.EndFill(id)
	if got := s.Surface(id).Fills(); len(got) != 0 {
		t.Errorf("Fills() = %v, want none", got)
	}
	mustValid(t, s, id)
}

func TestUndoRightAfterBeginFillClearsFill(t *testing.T) {
	s := NewStore()
	s.Push(id, line(0, 1))
	s.BeginFill(id, kale.Cyan)
	s.Undo(id)
	if _, ok := s.Surface(id).OpenFill(); ok {
		t.Error("fill still open after Undo removed the entry before its start")
	}
}

func TestEmptyFillCommitsNothing(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.EndFill(id)
	h := s.Surface(id)
	if len(h.Fills()) != 0 {
		t.Errorf("Fills() = %v, want none", h.Fills())
	}
	if _, ok := h.OpenFill(); ok {
		t.Error("fill still open after EndFill")
	}
}

func TestCommittedFillSurvivesUndoRedo(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 100))
	s.Push(id, line(100, 100))
	s.EndFill(id)

	h := s.Surface(id)
	if got := h.Fills(); len(got) != 1 || got[0].Frozen() {
		t.Fatalf("Fills() = %v, want one live region", got)
	}

	s.Undo(id)
	s.Redo(id)

	want := []FillRegion{{
		Start: 0,
		End:   2,
		Color: kale.Cyan,
		Path:  []kale.Primitive{line(0, 100), line(100, 100)},
	}}
	if got := h.Fills(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fills() = %v, want %v", got, want)
	}
	mustValid(t, s, id)
}

func TestCommittedFillFrozenByLaterEdits(t *testing.T) {
	path := []kale.Primitive{line(0, 100), line(100, 100)}
	tests := []struct {
		name string
		edit func(s *Store)
		log  int
	}{
		{"replace", func(s *Store) { s.Replace(id, line(-50, -50)) }, 2},
		{"undo then push", func(s *Store) {
			s.Undo(id)
			s.Push(id, line(5, 5))
		}, 2},
		{"undo everything then push", func(s *Store) {
			s.Undo(id)
			s.Undo(id)
			s.Push(id, line(1, 1))
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.BeginFill(id, kale.Cyan)
			s.Push(id, line(0, 100))
			s.Push(id, line(100, 100))
			s.EndFill(id)
			tt.edit(s)

			h := s.Surface(id)
			if h.Len() != tt.log {
				t.Errorf("Len() = %d, want %d", h.Len(), tt.log)
			}
			got := h.Fills()
			if len(got) != 1 {
				t.Fatalf("Fills() = %v, want one region", got)
			}
			if got[0].Start != 0 || got[0].End != 2 || !reflect.DeepEqual(got[0].Path, path) {
				t.Errorf("Fills()[0] = %+v, want [0, 2) over %v", got[0], path)
			}
			mustValid(t, s, id)
		})
	}
}

func TestFillsFreezeWhenTheirPrimitivesChange(t *testing.T) {
	s := NewStore()
	s.BeginFill(id, kale.Cyan)
	s.Push(id, line(0, 100))
	s.EndFill(id)
	s.BeginFill(id, kale.Red)
	s.Push(id, line(100, 100))
	s.EndFill(id)
	s.Push(id, line(3, 3))

	// Only the last entry changes; neither fill covers it.
	s.Replace(id, line(4, 4))
	fills := s.Surface(id).Fills()
	if fills[0].Frozen() || fills[1].Frozen() {
		t.Fatalf("Fills() = %v, want both live", fills)
	}

	s.Undo(id)
	s.Undo(id)
	fills = s.Surface(id).Fills()
	if !fills[1].Frozen() || fills[0].Frozen() {
		t.Fatalf("after undoing index 1: Fills() = %v, want only the second frozen", fills)
	}
	s.Undo(id)
	fills = s.Surface(id).Fills()
	if len(fills[0].Path) != 1 || len(fills[1].Path) != 2 {
		t.Errorf("paths = %v, %v, want lengths 1 and 2", fills[0].Path, fills[1].Path)
	}
	mustValid(t, s, id)
}

func TestPushNilIgnored(t *testing.T) {
	s := NewStore()
	s.Push(id, nil)
	s.Replace(id, nil)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 surfaces", s.Len())
	}

	s.Push(id, line(1, 1))
	s.Undo(id)
	s.Push(id, nil)
	h := s.Surface(id)
	if h.Len() != 0 || h.RedoLen() != 1 {
		t.Errorf("Len() = %d RedoLen() = %d, want 0 and 1", h.Len(), h.RedoLen())
	}
	s.Replace(id, nil)
	if h.RedoLen() != 1 {
		t.Errorf("RedoLen() after nil Replace = %d, want 1", h.RedoLen())
	}
	mustValid(t, s, id)
}

func TestRedoSetPenUpdatesRetainedPen(t *testing.T) {
	s := NewStore()
	s.Push(id, kale.SetPen{Pen: penRed})
	s.Push(id, kale.SetPen{Pen: penBlue})
	s.Undo(id)
	if got := s.Surface(id).RetainedPen(); got != penBlue {
		t.Errorf("RetainedPen() after Undo = %v, want %v", got, penBlue)
	}
	s.Push(id, kale.SetPen{Pen: penRed})
	s.Undo(id)
	s.Redo(id)
	if got := s.Surface(id).RetainedPen(); got != penRed {
		t.Errorf("RetainedPen() after Redo = %v, want %v", got, penRed)
	}
}

func TestDirtyTracking(t *testing.T) {
	s := NewStore()
	h := s.Surface(id)
	if !h.Dirty() {
		t.Fatal("new surface should start dirty")
	}
	h.MarkClean()

	noops := []func(){
		func() { s.Undo(id) },
		func() { s.Redo(id) },
		func() { s.EndFill(id) },
	}
	for i, f := range noops {
		f()
		if h.Dirty() {
			t.Fatalf("no-op edit %d marked surface dirty", i)
		}
	}

	s.Push(id, line(1, 1))
	if !h.Dirty() {
		t.Fatal("Push did not mark surface dirty")
	}
	h.MarkClean()

	s.Push(2, line(1, 1))
	if h.Dirty() {
		t.Error("edit on another surface marked this surface dirty")
	}
}

func TestSurfacesAreIndependent(t *testing.T) {
	s := NewStore()
	s.Push(1, kale.SetPen{Pen: penRed})
	s.BeginFill(1, kale.Cyan)
	s.Push(2, line(0, 1))
	s.Undo(2)

	if got := s.Surface(2).RetainedPen(); got != kale.DefaultPen() {
		t.Errorf("surface 2 RetainedPen() = %v, want default", got)
	}
	if _, ok := s.Surface(2).OpenFill(); ok {
		t.Error("surface 2 has an open fill")
	}
	if s.Surface(1).RedoLen() != 0 {
		t.Error("surface 1 redo stack changed by surface 2 undo")
	}
}

func TestValidateDetectsBrokenFill(t *testing.T) {
	h := newHistory(kale.DefaultPen())
	h.fill = &FillRegion{Start: 3}
	err := h.Validate()
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() = %v, want ErrInvariant", err)
	}

	h = newHistory(kale.DefaultPen())
	h.redo = []kale.Primitive{line(0, 0)}
	h.last = OpPush
	if err := h.Validate(); !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() with stale redo = %v, want ErrInvariant", err)
	}
}

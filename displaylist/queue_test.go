package displaylist

import (
	"sync"
	"testing"

	"github.com/sunjay/kale"
)

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue()
	s := NewStore()

	q.Submit(Push{ID: 1, Primitive: line(0, 1)}, nil, Push{ID: 1, Primitive: line(0, 2)})
	q.Submit(Undo{ID: 1})

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	if n := q.Drain(s); n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}

	h := s.Surface(1)
	if h.Len() != 1 || h.Log()[0] != line(0, 1) {
		t.Errorf("Log() = %v, want [LineTo(0,1)]", h.Log())
	}
	if h.RedoLen() != 1 {
		t.Errorf("RedoLen() = %d, want 1", h.RedoLen())
	}

	if n := q.Drain(s); n != 0 {
		t.Errorf("Drain() on empty queue = %d, want 0", n)
	}
}

func TestQueueConcurrentSubmit(t *testing.T) {
	q := NewQueue()
	s := NewStore()

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id SurfaceID) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Submit(Push{ID: id, Primitive: kale.LineTo{Point: kale.Pt(float64(i), 0)}})
			}
		}(SurfaceID(p))
	}
	wg.Wait()

	if n := q.Drain(s); n != producers*perProducer {
		t.Fatalf("Drain() = %d, want %d", n, producers*perProducer)
	}
	for p := 0; p < producers; p++ {
		h := s.Surface(SurfaceID(p))
		if h.Len() != perProducer {
			t.Fatalf("surface %d Len() = %d, want %d", p, h.Len(), perProducer)
		}
		for i, prim := range h.Log() {
			if got := prim.(kale.LineTo).Point.X; got != float64(i) {
				t.Fatalf("surface %d entry %d X = %v, want %v (per-producer order lost)", p, i, got, i)
			}
		}
	}
}

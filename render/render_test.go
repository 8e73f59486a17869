package render

import (
	"errors"
	"fmt"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/geometry"
)

// recorder is a Backend that records every call as a short string.
type recorder struct {
	calls []string
	// failOn makes the call with this string return errBackend.
	failOn string
}

var errBackend = errors.New("backend failed")

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.failOn {
		return errBackend
	}
	return nil
}

func (r *recorder) BeginFrame(bg kale.RGBA) error {
	return r.record("begin")
}

func (r *recorder) FillPolygon(f geometry.Fill) error {
	if f.Pending {
		return r.record(fmt.Sprintf("pending %d", f.Index))
	}
	return r.record(fmt.Sprintf("fill %d", f.Index))
}

func (r *recorder) StrokeSegment(s geometry.Segment) error {
	return r.record(fmt.Sprintf("%s %d", s.Kind, s.Index))
}

func (r *recorder) EndFrame() error {
	return r.record("end")
}

func line(x, y float64) kale.LineTo { return kale.LineTo{Point: kale.Pt(x, y)} }

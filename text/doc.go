// Package text is the font layer for kale surfaces.
//
// Measurer sizes Text primitives by shaping their content with
// go-text/typesetting, so the geometry compiler can move the path to the
// bottom-right corner of the drawn string. Mixed-direction content is split
// into bidi runs before shaping.
//
//	m, err := text.NewMeasurer()
//	if err != nil {
//		return err
//	}
//	if err := m.Register(1, ttfData); err != nil {
//		return err
//	}
//	c := geometry.NewCompiler(geometry.WithMeasurer(m))
//
// Font 0 is always Go Regular. Text naming an unregistered font is measured
// with it. Measurer is safe for concurrent use.
package text

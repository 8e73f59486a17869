// Package displaylist owns the per-surface command histories of a kale
// drawing.
//
// A Store maps surface IDs to Histories and is the only type allowed to
// mutate them. Every surface has an ordered log of primitives (the display
// list), a redo stack, an optional open fill region, the committed fill
// regions, and the last pen it saw. Surfaces are created on first use.
//
// Edits never fail: operations whose precondition does not hold (undo on an
// empty log, redo with nothing undone, a second BeginFill, an EndFill with
// no open fill) do nothing.
//
// Store and History are not safe for concurrent use. Producers on other
// goroutines submit Commands through a Queue which the render loop drains
// before each frame:
//
//	q := displaylist.NewQueue()
//	go func() { q.Submit(displaylist.Push{ID: 1, Primitive: kale.LineTo{Point: kale.Pt(0, 100)}}) }()
//	...
//	q.Drain(store)
//	composer.Render(ctx)
package displaylist

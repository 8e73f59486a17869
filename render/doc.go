// Package render turns surface display lists into frames.
//
// A Cache keeps the compiled geometry of every surface and recompiles a
// surface only after it has been edited. A Composer walks the surfaces in
// draw order once per frame and hands fills and strokes to a Backend, the
// tessellation and rasterization layer.
//
// Typical frame loop:
//
//	store := displaylist.NewStore()
//	cache := render.NewCache(store, geometry.NewCompiler())
//	comp := render.NewComposer(cache, backend, render.WithBackground(kale.White))
//
//	queue.Drain(store)
//	if err := comp.Render(ctx); err != nil {
//		log.Printf("render: %v", err)
//	}
//
// Cache and Composer are not safe for concurrent use. Edits from several
// goroutines go through a displaylist.Queue drained before each frame.
package render

// Package kale is a retained-mode 2D display-list engine for turtle-style
// vector drawing.
//
// # Overview
//
// Callers issue small edit commands (push a primitive, replace it, undo,
// redo, begin or end a fill, clear) against independently addressable
// drawing surfaces. The engine keeps one command history per surface and
// recompiles geometry only for surfaces that changed since the last frame.
//
// This root package holds the value types shared by every layer:
//
//   - Point, Rect, RGBA, Radians: geometry and color values
//   - Pen: stroke style (enabled flag, color, width)
//   - Primitive: the closed set of draw primitives (SetPen, LineTo, Arc,
//     Text, Image)
//
// # Architecture
//
//   - displaylist: per-surface history, the edit API, edit commands and
//     the single-writer edit queue
//   - geometry: compiles one surface history into stroke segments and fill
//     polygons
//   - render: incremental per-surface geometry cache and the frame composer
//   - text: font measurement backed by go-text/typesetting
//   - backend/raster, backend/pdf: reference backends for the composer
//
// # Quick Start
//
//	store := displaylist.NewStore()
//	store.Push(1, kale.SetPen{Pen: kale.Pen{Enabled: true, Color: kale.Red, StrokeWidth: 4}})
//	store.Push(1, kale.LineTo{Point: kale.Pt(0, 100)})
//
//	cache := render.NewCache(store, geometry.NewCompiler())
//	composer := render.NewComposer(cache, raster.New(640, 480))
//	if err := composer.Render(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Surfaces use a y-up coordinate system centered on the surface origin,
// matching turtle graphics: angles are in radians, 0 points along +X and
// positive angles turn counter-clockwise. Backends map this onto their own
// device space.
//
// # Concurrency
//
// The store, cache and compiler are single-threaded. Producers running on
// other goroutines submit edits through displaylist.Queue, which is drained
// on the render goroutine before each frame.
package kale

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

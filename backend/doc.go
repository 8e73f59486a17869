// Package backend registers the output formats a kale frame can be
// rendered to.
//
// Each output package registers itself from init():
//
//	import (
//		_ "github.com/sunjay/kale/backend/pdf"
//		_ "github.com/sunjay/kale/backend/raster"
//	)
//
// and callers pick one by name:
//
//	out, err := backend.New("png", backend.Config{Width: 800, Height: 600})
//	if err != nil {
//		log.Fatal(err)
//	}
//	comp := render.NewComposer(cache, out)
//	...
//	out.Encode(f)
package backend

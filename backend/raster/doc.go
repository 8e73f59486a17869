// Package raster draws kale frames into an *image.RGBA with rasterx
// antialiased scanline filling and stroking, and encodes them as PNG.
//
// Text is drawn with golang.org/x/image/font/opentype and images are
// resampled with golang.org/x/image/draw; rotated boxes go through an
// affine transform. The output registers as "png" in the backend registry.
package raster

package raster

import "errors"

var errNoFrame = errors.New("raster: draw outside BeginFrame/EndFrame")

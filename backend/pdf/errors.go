package pdf

import "errors"

var errNoFrame = errors.New("pdf: draw outside BeginFrame/EndFrame")

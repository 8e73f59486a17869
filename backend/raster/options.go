package raster

import "golang.org/x/image/draw"

// Option configures a Backend during creation.
type Option func(*options)

type options struct {
	pendingAlpha float64
	interp       draw.Interpolator
}

func defaultOptions() options {
	return options{
		pendingAlpha: 0.5,
		interp:       draw.ApproxBiLinear,
	}
}

// WithPendingAlpha sets the factor applied to the alpha of open fill
// outlines, in [0, 1]. The default is 0.5.
func WithPendingAlpha(a float64) Option {
	return func(o *options) {
		if a >= 0 && a <= 1 {
			o.pendingAlpha = a
		}
	}
}

// WithInterpolator sets the resampling used for images and rotated text.
// The default is draw.ApproxBiLinear; draw.NearestNeighbor keeps pixel
// art sharp.
func WithInterpolator(i draw.Interpolator) Option {
	return func(o *options) {
		if i != nil {
			o.interp = i
		}
	}
}

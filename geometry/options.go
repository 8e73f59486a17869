package geometry

// DefaultTolerance is the default maximum distance, in surface units,
// between a flattened arc and the true circle.
const DefaultTolerance = 0.25

// Option configures a Compiler during creation.
type Option func(*options)

type options struct {
	measurer  TextMeasurer
	tolerance float64
}

func defaultOptions() options {
	return options{
		measurer:  EstimateMeasurer{},
		tolerance: DefaultTolerance,
	}
}

// WithMeasurer sets the font layer used to size Text primitives.
//
// Example:
//
//	m, _ := text.NewMeasurer()
//	c := geometry.NewCompiler(geometry.WithMeasurer(m))
func WithMeasurer(m TextMeasurer) Option {
	return func(o *options) {
		if m != nil {
			o.measurer = m
		}
	}
}

// WithTolerance sets the arc flattening tolerance. Non-positive values keep
// the default.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

package pdf

// Option configures a Backend during creation.
type Option func(*options)

type options struct {
	title        string
	pendingAlpha float64
}

func defaultOptions() options {
	return options{pendingAlpha: 0.5}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
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

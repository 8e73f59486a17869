package text

// DefaultCacheSize is the default number of measured strings kept.
const DefaultCacheSize = 512

// Option configures a Measurer during creation.
type Option func(*options)

type options struct {
	cacheSize int
	language  string
}

func defaultOptions() options {
	return options{
		cacheSize: DefaultCacheSize,
		language:  "en",
	}
}

// WithCacheSize sets how many measured strings are kept.
// A value of 0 keeps every string.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}

// WithLanguage sets the BCP 47 language tag passed to the shaper.
// The default is "en".
func WithLanguage(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.language = tag
		}
	}
}

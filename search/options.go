package search

// DefaultSoonDays is the look-ahead window used by is:soon.
const DefaultSoonDays = 3

type options struct {
	forcedQuery string
	soonDays    int
}

// Option configures parsing and predicate building.
type Option func(*options)

// WithForcedQuery appends fixed free text to every parsed query.
func WithForcedQuery(q string) Option {
	return func(o *options) {
		o.forcedQuery = q
	}
}

// WithSoonDays sets the number of days is:soon looks ahead. Values below one
// keep the default.
func WithSoonDays(days int) Option {
	return func(o *options) {
		if days > 0 {
			o.soonDays = days
		}
	}
}

func newOptions(opts []Option) options {
	o := options{soonDays: DefaultSoonDays}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

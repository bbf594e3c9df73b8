package auth

import "time"

type issuerOptions struct {
	now func() time.Time
}

// Option configures a token issuer.
type Option func(*issuerOptions)

// WithClock overrides the time source used to stamp and check tokens.
func WithClock(now func() time.Time) Option {
	return func(o *issuerOptions) {
		o.now = now
	}
}

func buildOptions(opts []Option) issuerOptions {
	o := issuerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

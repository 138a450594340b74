package watcher

import "time"

type options struct {
	debounce    time.Duration
	invalidator Invalidator
}

type Option func(*options)

// WithDebounce sets the quiet period before OnChange fires.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithInvalidator forwards write, remove and rename events to inv.
func WithInvalidator(inv Invalidator) Option {
	return func(o *options) { o.invalidator = inv }
}

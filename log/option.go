package log

// Option adjusts a single logger configuration setting.
type Option func(config) config

// with returns a copy of c with every option applied in order.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

package cube

import (
	"github.com/go-kit/log"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	minSupport int
	logger     log.Logger
	metrics    *Metrics
}

// WithMinSupport sets the absolute count a cell needs to be emitted. Default 1.
func WithMinSupport(n int) Option {
	return func(c *config) {
		c.minSupport = n
	}
}

// WithLogger sets the logger for computation summaries.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics makes the engine record every computation in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		minSupport: 1,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

package simplex

import (
	"io"
	"log/slog"
)

const (
	DefaultMaxIterations = 50
	DefaultEpsilon       = 1e-9
	DefaultBigM          = 1e6
)

// Options tune a single Solve call.
type Options struct {
	// MaxIterations caps the number of pivots; it is the only guard against cycling.
	MaxIterations int
	// Epsilon is the tolerance used by every sign and ratio test.
	Epsilon float64
	// BigM is the cost of an artificial column.
	BigM   float64
	Logger *slog.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
		BigM:          DefaultBigM,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

func WithBigM(m float64) Option {
	return func(o *Options) { o.BigM = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	def := DefaultOptions()
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if !(o.Epsilon > 0) {
		o.Epsilon = def.Epsilon
	}
	if !(o.BigM > 0) {
		o.BigM = def.BigM
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	return o
}

package lazybtree

const (
	// MinOrder is the smallest order a tree accepts; smaller values are raised to it.
	MinOrder = 3

	// DefaultOrder matches the fan-out of a typical page-sized node.
	DefaultOrder = 64
)

// Options configures tree behavior.
type Options struct {
	logger Logger
}

// DefaultOptions returns the configuration used when no options are passed.
//
//goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger: DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger routes structural events (root splits, root collapses, degenerate
// node collapses) to logger at Info level.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}

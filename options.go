package linesim

// Option configures a Topology at construction time, following the
// teacher's functional-options pattern (eventloop.New's Option/opts
// variadic shape).
type Option func(*topologyOptions)

type topologyOptions struct {
	logger Logger
}

func newTopologyOptions() *topologyOptions {
	return &topologyOptions{logger: NewNoOpLogger()}
}

// WithLogger sets the Logger every Station, Source, Sink, and the
// Scheduler itself report diagnostics to. Defaults to a no-op logger.
func WithLogger(l Logger) Option {
	return func(o *topologyOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

package calculation

// Logger is a minimal logging interface for the simulation engines.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Option configures an engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger Logger
}

// WithLogger sets the engine logger. A nil logger keeps the no-op default.
func WithLogger(l Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) engineOptions {
	o := engineOptions{logger: NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

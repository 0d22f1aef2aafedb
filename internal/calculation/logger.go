package calculation

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op. A zap SugaredLogger
// satisfies it.
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

// instrumentLogger prefixes every message with the instrument it concerns, so that
// lines from concurrently projected instruments stay attributable.
type instrumentLogger struct {
	next Logger
	name string
}

func forInstrument(l Logger, name string) Logger {
	if _, ok := l.(NopLogger); ok {
		return l
	}
	return instrumentLogger{next: l, name: name}
}

func (l instrumentLogger) Debugf(format string, args ...any) { l.next.Debugf(l.prefix(format), args...) }
func (l instrumentLogger) Infof(format string, args ...any)  { l.next.Infof(l.prefix(format), args...) }
func (l instrumentLogger) Warnf(format string, args ...any)  { l.next.Warnf(l.prefix(format), args...) }
func (l instrumentLogger) Errorf(format string, args ...any) { l.next.Errorf(l.prefix(format), args...) }

func (l instrumentLogger) prefix(format string) string {
	return "[" + l.name + "] " + format
}

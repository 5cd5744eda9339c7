package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Warner is implemented by loggers that show warnings apart from progress messages
type Warner interface {
	Warnf(format string, args ...interface{})
}

// Warnf logs a warning through logger, prefixing it when the logger has no warning level
func Warnf(logger Logger, format string, args ...interface{}) {
	if w, ok := logger.(Warner); ok {
		w.Warnf(format, args...)
		return
	}
	logger.Printf("Warning: "+format, args...)
}

// NopLogger discards all messages
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

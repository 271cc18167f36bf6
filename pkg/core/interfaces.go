package core

// Logger interface for renderer and loader progress output
type Logger interface {
	Printf(format string, args ...interface{})
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a Logger that discards output
func NopLogger() Logger {
	return nopLogger{}
}

// LoggerOrNop returns logger, or a discarding logger when it is nil
func LoggerOrNop(logger Logger) Logger {
	if logger == nil {
		return nopLogger{}
	}
	return logger
}

package model

// Logger is the logger used by the Onionoo client. The global
// logger of github.com/apex/log implements this interface.
type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...interface{})
	Info(msg string)
	Infof(format string, v ...interface{})
	Warn(msg string)
	Warnf(format string, v ...interface{})
}

// DiscardLogger is a [Logger] ignoring all messages.
var DiscardLogger Logger = nullLogger{}

type nullLogger struct{}

func (nullLogger) Debug(msg string)                       {}
func (nullLogger) Debugf(format string, v ...interface{}) {}
func (nullLogger) Info(msg string)                        {}
func (nullLogger) Infof(format string, v ...interface{})  {}
func (nullLogger) Warn(msg string)                        {}
func (nullLogger) Warnf(format string, v ...interface{})  {}

// ErrorToStringOrOK returns the error string, or "ok" for a nil error.
func ErrorToStringOrOK(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

// ValidLoggerOrDefault returns logger, or [DiscardLogger] when logger is nil.
func ValidLoggerOrDefault(logger Logger) Logger {
	if logger == nil {
		return DiscardLogger
	}
	return logger
}

package log

import (
	"github.com/kataras/golog"
)

// GologLogger implements Logger using kataras/golog
type GologLogger struct {
	logger *golog.Logger
	level  Level
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger creates a new logger backed by an existing golog.Logger
func NewGologLogger(logger *golog.Logger) *GologLogger {
	return &GologLogger{
		logger: logger,
		level:  LevelInfo,
	}
}

// Debug logs debug messages
func (l *GologLogger) Debug(format string, v ...any) {
	if l.level <= LevelDebug {
		l.logger.Debugf(format, v...)
	}
}

// Info logs informational messages
func (l *GologLogger) Info(format string, v ...any) {
	if l.level <= LevelInfo {
		l.logger.Infof(format, v...)
	}
}

// Warn logs warning messages
func (l *GologLogger) Warn(format string, v ...any) {
	if l.level <= LevelWarn {
		l.logger.Warnf(format, v...)
	}
}

// Error logs error messages
func (l *GologLogger) Error(format string, v ...any) {
	if l.level <= LevelError {
		l.logger.Errorf(format, v...)
	}
}

// SetLevel sets the log level on both the adapter and the underlying logger
func (l *GologLogger) SetLevel(level Level) {
	l.level = level

	gologLevel := "info"
	switch level {
	case LevelDebug:
		gologLevel = "debug"
	case LevelInfo:
		gologLevel = "info"
	case LevelWarn:
		gologLevel = "warn"
	case LevelError:
		gologLevel = "error"
	case LevelNone:
		gologLevel = "disable"
	}

	l.logger.SetLevel(gologLevel)
}

// GetLevel returns the current log level
func (l *GologLogger) GetLevel() Level {
	return l.level
}

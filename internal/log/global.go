package log

import (
	"sync"
)

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefault sets the package-level default logger
func SetDefault(l *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = l
}

// GetDefault returns the package-level default logger, creating one if needed
func GetDefault() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = Default()
	}
	return defaultLogger
}

// Debug logs a message at debug level using the default logger
func Debug(msg string, args ...any) {
	GetDefault().Debug(msg, args...)
}

// Info logs a message at info level using the default logger
func Info(msg string, args ...any) {
	GetDefault().Info(msg, args...)
}

// Warn logs a message at warn level using the default logger
func Warn(msg string, args ...any) {
	GetDefault().Warn(msg, args...)
}

// Error logs a message at error level using the default logger
func Error(msg string, args ...any) {
	GetDefault().Error(msg, args...)
}

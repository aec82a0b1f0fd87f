// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	log = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
	})
	return l
}

// Setup configures level, format and output of the shared logger.
// verbose enables debug logging, jsonLogs switches to JSON output, and
// quiet suppresses everything below the error level.
func Setup(verbose, jsonLogs, quiet bool) {
	mu.Lock()
	defer mu.Unlock()

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	if jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		})
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields map[string]any) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return log.WithFields(logrus.Fields(fields))
}

// WithField returns an entry carrying a single structured field.
func WithField(key string, value any) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return log.WithField(key, value)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf(format, args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Infof(format, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Errorf(format, args...)
}

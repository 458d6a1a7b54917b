// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the set of logging methods the emulator relies on.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing plain text to stdout at info level.
func New() Logger {
	return NewWithOutput(os.Stdout, false)
}

// NewWithOutput returns a Logger writing to w. When debug is set,
// Debugf messages are emitted as well.
func NewWithOutput(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return l
}

// WithField returns a Logger that tags every message with the given
// component name, when l is backed by logrus. Other loggers are
// returned unchanged.
func WithField(l Logger, key string, value interface{}) Logger {
	switch lg := l.(type) {
	case *logrus.Logger:
		return lg.WithField(key, value)
	case *logrus.Entry:
		return lg.WithField(key, value)
	}
	return l
}

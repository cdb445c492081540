package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Opt configures the logger returned by New.
type Opt func(l *logrus.Logger)

// WithOutput sets the destination of the log output.
func WithOutput(w io.Writer) Opt {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithDebug enables debug output.
func WithDebug() Opt {
	return func(l *logrus.Logger) {
		l.SetLevel(logrus.DebugLevel)
	}
}

// New returns a Logger backed by logrus, writing plain text lines to
// stderr at info level.
func New(opts ...Opt) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

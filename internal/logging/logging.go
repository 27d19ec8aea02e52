// Package logging builds the logrus logger used by the vjp command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// Options configures New
type Options struct {
	Format string
	Debug  bool
	// Out defaults to os.Stderr so logs never mix with formatted output
	Out io.Writer
}

// New creates a logger writing to opts.Out at info level, or debug level
// when opts.Debug is set
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	l.SetFormatter(CreateFormatter(opts.Format))
	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// CreateFormatter create logrus formatter by string
func CreateFormatter(logFormat string) logrus.Formatter {
	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return &logrus.JSONFormatter{}
	default:
		return &logrus.TextFormatter{
			DisableTimestamp: true,
		}
	}
}

// Package logging sets up the logrus loggers used by the planner.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options select the level, format and output of a logger.
type Options struct {
	Level  string // logrus level name, e.g. "debug"
	Format string // "text" or "json"
	Output string // "stdout", "stderr" or a file path
}

// New creates a logger from opts. Invalid levels fall back to info and unusable
// output files fall back to stderr; both are reported through the new logger.
// The returned closer releases the log file, if any.
func New(opts Options) (*logrus.Logger, io.Closer) {
	logger := logrus.New()

	var warnings []string

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		warnings = append(warnings, "invalid log level '"+opts.Level+"', using 'info' instead: "+err.Error())
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var closer io.Closer = nopCloser{}

	switch strings.ToLower(opts.Output) {
	case "", "stderr":
		logger.SetOutput(os.Stderr)
	case "stdout":
		logger.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			warnings = append(warnings, "failed to open log file '"+opts.Output+"', using 'stderr' instead: "+err.Error())
			logger.SetOutput(os.Stderr)
		} else {
			logger.SetOutput(file)
			closer = file
		}
	}

	for _, w := range warnings {
		logger.Warn(w)
	}

	return logger, closer
}

// Discard returns a logger that drops every entry.
func Discard() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)

	return logger
}

// OrDiscard returns log, or a discarding logger if log is nil.
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return Discard()
	}

	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/rs/zerolog"
)

var _ batfish.Logger = (*Logger)(nil)

// Logger adapts zerolog to batfish.Logger.
type Logger struct {
	logger zerolog.Logger
}

// Options selects the output and verbosity of a Logger.
type Options struct {
	Out     io.Writer
	Verbose bool
	Debug   bool
	NoColor bool
}

// Level maps the CLI verbosity flags to a zerolog level. Warnings and errors
// are always shown.
func Level(verbose, debug bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// New creates a console logger. A nil Out writes to stderr.
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "",
		NoColor:    opts.NoColor,
		FormatLevel: func(i interface{}) string {
			return "[" + strings.ToUpper(fmt.Sprintf("%s", i)) + "]"
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
	}
	output.PartsExclude = []string{zerolog.TimestampFieldName}

	return &Logger{logger: zerolog.New(output).Level(Level(opts.Verbose, opts.Debug))}
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Debug implements batfish.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

// Info implements batfish.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

// Warn implements batfish.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

// Error implements batfish.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

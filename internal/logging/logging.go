// Package logging provides the logr logger used by the calc command, backed by
// zap.
package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	unknownLevel LogLevel = iota // dummy value to detect if not set
	ERROR
	INFO
	DEBUG
)

func (l LogLevel) String() string {
	switch l {
	case ERROR:
		return "ERROR"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	}
	return "UNKNOWN"
}

func ParseLogLevel(raw string) (LogLevel, error) {
	switch strings.ToUpper(raw) {
	case "ERROR":
		return ERROR, nil
	case "INFO":
		return INFO, nil
	case "DEBUG":
		return DEBUG, nil
	}
	return INFO, fmt.Errorf("unknown log level '%s', valid values are: [%s] (case-insensitive)", raw, strings.Join([]string{ERROR.String(), INFO.String(), DEBUG.String()}, ", "))
}

type LogFormat int

const (
	unknownFormat LogFormat = iota
	TEXT
	JSON
)

func (f LogFormat) String() string {
	switch f {
	case TEXT:
		return "TEXT"
	case JSON:
		return "JSON"
	}
	return "UNKNOWN"
}

func ParseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToUpper(raw) {
	case "TEXT":
		return TEXT, nil
	case "JSON":
		return JSON, nil
	}
	return TEXT, fmt.Errorf("unknown log format '%s', valid values are: [%s] (case-insensitive)", raw, strings.Join([]string{TEXT.String(), JSON.String()}, ", "))
}

// Logger wraps a logr.Logger with explicit levels.
type Logger struct {
	internal logr.Logger
}

// New builds a logger writing to the given zap output paths, "stderr" if none
// are given.
func New(level LogLevel, format LogFormat, outputs ...string) (Logger, error) {
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(toZapLevel(level)),
		Encoding:          toZapFormat(format),
		DisableStacktrace: true,
		DisableCaller:     true,
		EncoderConfig:     encoderConfig(format),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
	}
	zapLog, err := cfg.Build()
	if err != nil {
		return Logger{}, err
	}
	return Wrap(zapr.NewLogger(zapLog)), nil
}

func encoderConfig(format LogFormat) zapcore.EncoderConfig {
	ecfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format != JSON {
		// Terminal output doesn't need timestamps.
		ecfg.TimeKey = ""
	}
	return ecfg
}

// Wrap constructs a new Logger, using the provided logr.Logger internally.
func Wrap(log logr.Logger) Logger {
	return Logger{internal: log}
}

// Discard is a wrapper for logr.Discard.
func Discard() Logger {
	return Wrap(logr.Discard())
}

// Logr returns the internal logr.Logger.
func (l Logger) Logr() logr.Logger {
	return l.internal
}

// Enabled tests whether logging at the provided level is enabled.
func (l Logger) Enabled(lvl LogLevel) bool {
	return l.internal.GetSink() != nil && l.internal.GetSink().Enabled(levelToVerbosity(lvl))
}

// Info logs a non-error message with the given key/value pairs as context.
func (l Logger) Info(msg string, keysAndValues ...interface{}) {
	l.internal.V(levelToVerbosity(INFO)).Info(msg, keysAndValues...)
}

// Debug logs a message at DEBUG level.
func (l Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.internal.V(levelToVerbosity(DEBUG)).Info(msg, keysAndValues...)
}

// Error logs an error, with the given message and key/value pairs as context.
func (l Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.internal.Error(err, msg, keysAndValues...)
}

// WithValues adds some key-value pairs of context to a logger.
func (l Logger) WithValues(keysAndValues ...interface{}) Logger {
	return Wrap(l.internal.WithValues(keysAndValues...))
}

// WithName adds a new element to the logger's name.
func (l Logger) WithName(name string) Logger {
	return Wrap(l.internal.WithName(name))
}

// NewContext is a wrapper for logr.NewContext.
func NewContext(ctx context.Context, log Logger) context.Context {
	return logr.NewContext(ctx, log.Logr())
}

// FromContextOrDiscard returns the logger in ctx, or a discard logger if there
// is none.
func FromContextOrDiscard(ctx context.Context) Logger {
	log, err := logr.FromContext(ctx)
	if err != nil {
		return Discard()
	}
	return Wrap(log)
}

// levelToVerbosity maps a level to a logr verbosity. zapr treats V(n) as zap
// level -n.
func levelToVerbosity(level LogLevel) int {
	var res int
	switch level {
	case DEBUG:
		res = int(zap.DebugLevel)
	case ERROR:
		res = int(zap.ErrorLevel)
	default:
		res = int(zap.InfoLevel)
	}
	return res * -1
}

// toZapLevel converts our LogLevel into a zap Level.
// Unknown LogLevels are silently treated as INFO.
func toZapLevel(l LogLevel) zapcore.Level {
	switch l {
	case DEBUG:
		return zap.DebugLevel
	case ERROR:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// toZapFormat converts our LogFormat into a zap encoding.
// Unknown LogFormats are silently treated as TEXT.
func toZapFormat(f LogFormat) string {
	switch f {
	case JSON:
		return "json"
	default:
		return "console"
	}
}
